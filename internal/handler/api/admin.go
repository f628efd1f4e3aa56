package api

import (
	"errors"
	"net/http"

	reqdto "treebox/internal/handler/dto/request"
	resdto "treebox/internal/handler/dto/response"
	"treebox/internal/handler/httperr"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands commands.AdminCommands
	adminQueries  queries.AdminQueries
}

func NewAdminHandler(adminCommands commands.AdminCommands, adminQueries queries.AdminQueries) *AdminHandler {
	return &AdminHandler{
		adminCommands: adminCommands,
		adminQueries:  adminQueries,
	}
}

// @Summary List admins
// @Description List staff accounts
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AdminResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	views, err := h.adminQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdminViews(views))
}

// @Summary Create admin
// @Description Register a new crew account. Accounts created here are always crew.
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAdminRequest true "Admin request"
// @Success 201 {object} resdto.AdminResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admins [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req reqdto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.adminCommands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAdminView(view))
}

// @Summary Update admin
// @Description Update a crew account's display name and active state. Email is fixed and the super account cannot be modified.
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body reqdto.UpdateAdminRequest true "Admin update"
// @Success 200 {object} resdto.AdminResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admins/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.adminCommands.Update(c.Request.Context(), id, req.ToParams())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdminView(view))
}

// @Summary Delete admin
// @Description Remove a crew account. The super account cannot be removed.
// @Tags admins
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admins/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.adminCommands.Delete(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid admin ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AdminHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid admin data", nil)
	case errors.Is(err, commands.ErrAdminNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Admin not found", nil)
	case errors.Is(err, commands.ErrDuplicateEmail):
		httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
	case errors.Is(err, commands.ErrAdminImmutable):
		httperr.AbortWithError(c, http.StatusForbidden, err, "This account cannot be modified", nil)
	case errors.Is(err, commands.ErrAdminUndeletable):
		httperr.AbortWithError(c, http.StatusForbidden, err, "This account cannot be removed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
