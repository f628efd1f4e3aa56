package api

import (
	"errors"
	"net/http"

	reqdto "treebox/internal/handler/dto/request"
	resdto "treebox/internal/handler/dto/response"
	"treebox/internal/handler/httperr"
	"treebox/internal/handler/middleware"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	adminQueries queries.AdminQueries
}

func NewAuthHandler(authCommands commands.AuthCommands, adminQueries queries.AdminQueries) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		adminQueries: adminQueries,
	}
}

// @Summary Staff login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), commands.LoginParams{
		Email:    req.NormalizedEmail(),
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		Admin:       resdto.FromAdminView(result.Admin),
	})
}

// @Summary Logout
// @Description Logout current staff session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Stateless JWT: the client discards the token.
	c.Status(http.StatusNoContent)
}

// @Summary Get current admin
// @Description Get the authenticated staff account
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.AdminResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("admin id missing in context"), "Not authenticated", nil)
		return
	}

	view, err := h.adminQueries.GetByID(c.Request.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAdminNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Admin not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdminView(view))
}
