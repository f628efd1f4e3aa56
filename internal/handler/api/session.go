package api

import (
	"errors"
	"fmt"
	"net/http"

	reqdto "treebox/internal/handler/dto/request"
	resdto "treebox/internal/handler/dto/response"
	"treebox/internal/handler/httperr"
	"treebox/internal/handler/middleware"
	"treebox/internal/pkg/clock"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionCommands commands.SessionCommands
	sessionQueries  queries.SessionQueries
	clock           clock.Clock
}

func NewSessionHandler(
	sessionCommands commands.SessionCommands,
	sessionQueries queries.SessionQueries,
	clk clock.Clock,
) *SessionHandler {
	return &SessionHandler{
		sessionCommands: sessionCommands,
		sessionQueries:  sessionQueries,
		clock:           clk,
	}
}

// @Summary List sessions
// @Description List rental sessions, optionally narrowed by business date, room and free-text search
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Param room query string false "Room name, or ALL"
// @Param search query string false "Matches customer, cashier, phone, note and room"
// @Success 200 {object} resdto.SessionListResponse
// @Failure 401 {object} map[string]string
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	views, err := h.sessionQueries.List(c.Request.Context(), h.filterFromQuery(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionViews(views))
}

// @Summary Get session
// @Description Get a rental session by ID
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	view, err := h.sessionQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Create session
// @Description Book a room for a time slot. Start and end are snapped to whole hours and the duration is clamped to the venue limit.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSessionRequest true "Session request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req reqdto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.sessionCommands.Create(c.Request.Context(), req.ToParams(h.clock.Now()))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSessionView(view))
}

// @Summary Quick-add session
// @Description Book one hour in a room starting at the given hour, attributed to the signed-in operator
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuickAddSessionRequest true "Quick-add request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/quick [post]
func (h *SessionHandler) QuickAdd(c *gin.Context) {
	var req reqdto.QuickAddSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	kasir, _ := middleware.GetAdminName(c)
	view, err := h.sessionCommands.QuickAdd(c.Request.Context(), req.ToParams(h.clock.Now(), kasir))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSessionView(view))
}

// @Summary Update session
// @Description Update a session. The end time is recomputed from the start time and duration.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.UpdateSessionRequest true "Session update"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.sessionCommands.Update(c.Request.Context(), id, req.ToParams())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Delete session
// @Description Delete a session permanently
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.sessionCommands.Delete(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Session summaries
// @Description Per-room session counts and total hours for the dashboard cards
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SummaryResponse
// @Failure 401 {object} map[string]string
// @Router /sessions/summary [get]
func (h *SessionHandler) Summaries(c *gin.Context) {
	result, err := h.sessionQueries.Summaries(c.Request.Context(), h.filterFromQuery(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSummaryResult(result))
}

// @Summary Export sessions as CSV
// @Description Download the filtered sessions as a CSV file ordered by room and start time
// @Tags sessions
// @Produce text/csv
// @Security BearerAuth
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Param room query string false "Room name, or ALL"
// @Param search query string false "Free-text filter"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} map[string]string
// @Router /sessions/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	content, filename, err := h.sessionQueries.ExportCSV(c.Request.Context(), h.filterFromQuery(c))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNothingToExport):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No sessions match the export filter", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

func (h *SessionHandler) filterFromQuery(c *gin.Context) queries.SessionFilter {
	return queries.SessionFilter{
		Date:   c.Query("date"),
		Room:   c.Query("room"),
		Search: c.Query("search"),
	}
}

func (h *SessionHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrUnknownRoom):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Room is not registered", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session data", nil)
	case errors.Is(err, commands.ErrInvalidTimeWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
	case errors.Is(err, commands.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
	case errors.Is(err, commands.ErrScheduleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room is already booked for that slot", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
