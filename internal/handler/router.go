package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"treebox/internal/domain/admin"
	"treebox/internal/handler/api"
	"treebox/internal/handler/middleware"
	"treebox/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	sessionHandler *api.SessionHandler,
	roomHandler *api.RoomHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, sessionHandler, roomHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	sessionHandler *api.SessionHandler,
	roomHandler *api.RoomHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodGet, Path: "", Handler: sessionHandler.List},
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.Create},
				{Method: http.MethodPost, Path: "/quick", Handler: sessionHandler.QuickAdd},
				{Method: http.MethodGet, Path: "/summary", Handler: sessionHandler.Summaries},
				{Method: http.MethodGet, Path: "/export", Handler: sessionHandler.Export},
				{Method: http.MethodGet, Path: "/:id", Handler: sessionHandler.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: sessionHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: sessionHandler.Delete},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(authMiddleware.RequireAuth())
		{
			superOnly := authMiddleware.RequireRoleAtLeast(admin.RoleSuper)
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: roomHandler.List},
				{Method: http.MethodPost, Path: "", Handler: roomHandler.Create, Mw: []gin.HandlerFunc{superOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: roomHandler.Update, Mw: []gin.HandlerFunc{superOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: roomHandler.Deactivate, Mw: []gin.HandlerFunc{superOnly}},
				{Method: http.MethodPost, Path: "/:id/activate", Handler: roomHandler.Activate, Mw: []gin.HandlerFunc{superOnly}},
			})
		}

		admins := apiGroup.Group("/admins")
		admins.Use(authMiddleware.RequireAuth())
		admins.Use(authMiddleware.RequireRoleAtLeast(admin.RoleSuper))
		{
			addRoutes(admins, []route{
				{Method: http.MethodGet, Path: "", Handler: adminHandler.List},
				{Method: http.MethodPost, Path: "", Handler: adminHandler.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: adminHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: adminHandler.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
