//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"treebox/internal/handler/api"
	resdto "treebox/internal/handler/dto/response"
	"treebox/internal/pkg/clock"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"
	"treebox/tests/common/builder"
	"treebox/tests/common/httptest"
	"treebox/tests/common/testutil"
	commandsmock "treebox/tests/mock/commands"
	queriesmock "treebox/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testOperatorName = "Siti Rahma"

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	mockQueries  *queriesmock.MockSessionQueries
	handler      *api.SessionHandler
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	fixedNow := time.Date(2025, 5, 2, 20, 0, 0, 0, time.UTC)
	s.handler = api.NewSessionHandler(s.mockCommands, s.mockQueries, clock.NewMockClock(fixedNow))

	// Mock middleware behavior: the operator name normally comes from the token.
	withOperator := func(c *gin.Context) {
		c.Set("admin_name", testOperatorName)
	}

	s.router.GET("/sessions", s.handler.List)
	s.router.POST("/sessions", s.handler.Create)
	s.router.POST("/sessions/quick", withOperator, s.handler.QuickAdd)
	s.router.GET("/sessions/summary", s.handler.Summaries)
	s.router.GET("/sessions/export", s.handler.Export)
	s.router.GET("/sessions/:id", s.handler.Get)
	s.router.PUT("/sessions/:id", s.handler.Update)
	s.router.DELETE("/sessions/:id", s.handler.Delete)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestList() {
	url := "/sessions"

	s.Run("success: returns sessions with total", func() {
		views := []*queries.SessionView{
			builder.NewSessionBuilder().BuildView(),
			builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) { b.Room = "BLACK GOLD" }).BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), queries.SessionFilter{}).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.SessionListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2, response.Total)
		s.Equal("RED RUBY", response.Sessions[0].Room)
	})

	s.Run("success: forwards date, room and search filters", func() {
		expected := queries.SessionFilter{Date: "2025-05-02", Room: "RED RUBY", Search: "budi"}
		s.mockQueries.EXPECT().List(gomock.Any(), expected).
			Return([]*queries.SessionView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?date=2025-05-02&room=RED+RUBY&search=budi", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 when the query fails", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *SessionHandlerTestSuite) TestCreate() {
	url := "/sessions"

	reqBody := builder.NewSessionBuilder().BuildCreateRequestDTO()
	returnView := builder.NewSessionBuilder().BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.CreateSessionParams) (*queries.SessionView, error) {
				s.Equal(reqBody.Room, p.Room)
				s.Equal(reqBody.NamaPelanggan, p.NamaPelanggan)
				s.Equal(reqBody.WaktuMulai, p.WaktuMulai)
				s.Equal("2025-05-02", p.Tanggal.Format("2006-01-02"))
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.Room, response.Room)
		s.Equal(returnView.NamaPelanggan, response.NamaPelanggan)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: room", mutate: testutil.Field("room", nil)},
			{name: "missing field: nama_pelanggan", mutate: testutil.Field("nama_pelanggan", nil)},
			{name: "missing field: nama_kasir", mutate: testutil.Field("nama_kasir", nil)},
			{name: "missing field: waktu_mulai", mutate: testutil.Field("waktu_mulai", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown room",
				commandsError:  commands.ErrUnknownRoom,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Room is not registered",
			},
			{
				name:           "domain validation",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid session data",
			},
			{
				name:           "invalid time window",
				commandsError:  commands.ErrInvalidTimeWindow,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid time slot",
			},
			{
				name:           "schedule conflict",
				commandsError:  commands.ErrScheduleConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Room is already booked for that slot",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *SessionHandlerTestSuite) TestQuickAdd() {
	url := "/sessions/quick"
	returnView := builder.NewSessionBuilder().BuildView()

	s.Run("success: cashier falls back to the signed-in operator", func() {
		reqBody := map[string]any{
			"room":           "RED RUBY",
			"nama_pelanggan": "Budi Santoso",
			"waktu_mulai":    "19:00",
		}
		s.mockCommands.EXPECT().QuickAdd(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.QuickAddParams) (*queries.SessionView, error) {
				s.Equal(testOperatorName, p.NamaKasir)
				s.Equal("RED RUBY", p.Room)
				s.Equal("19:00", p.WaktuMulai)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("success: explicit cashier name wins over the operator", func() {
		reqBody := map[string]any{
			"room":           "RED RUBY",
			"nama_pelanggan": "Budi Santoso",
			"nama_kasir":     "Andi Wijaya",
			"waktu_mulai":    "19:00",
		}
		s.mockCommands.EXPECT().QuickAdd(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.QuickAddParams) (*queries.SessionView, error) {
				s.Equal("Andi Wijaya", p.NamaKasir)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 409 when the slot is taken", func() {
		reqBody := map[string]any{
			"room":           "RED RUBY",
			"nama_pelanggan": "Budi Santoso",
			"waktu_mulai":    "19:00",
		}
		s.mockCommands.EXPECT().QuickAdd(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrScheduleConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Room is already booked for that slot")
	})
}

func (s *SessionHandlerTestSuite) TestGet() {
	id := uuid.New()
	returnView := builder.NewSessionBuilder().BuildView()

	s.Run("success: returns the session", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+id.String(), nil, "")

		var response resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.Room, response.Room)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid session ID format")
	})

	s.Run("error: 404 when session does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})
}

func (s *SessionHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	reqBody := builder.NewSessionBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewSessionBuilder().BuildView()

	s.Run("success: returns 200 with the updated session", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody.ToParams()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/sessions/"+id.String(), reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when qty_jam is below one", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("qty_jam", 0))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/sessions/"+id.String(), requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 404 when session does not exist", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/sessions/"+id.String(), reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})

	s.Run("error: 409 when the new slot conflicts", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrScheduleConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/sessions/"+id.String(), reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *SessionHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/sessions/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when session does not exist", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(commands.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/sessions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})
}

func (s *SessionHandlerTestSuite) TestSummaries() {
	url := "/sessions/summary?date=2025-05-02"

	s.Run("success: returns the aggregate and per-room cards", func() {
		result := &queries.SummaryResult{
			All: queries.RoomSummary{Room: queries.FilterAllRooms, Count: 3, TotalHours: 5},
			Rooms: []queries.RoomSummary{
				{Room: "RED RUBY", Count: 2, TotalHours: 3},
				{Room: "BLACK GOLD", Count: 1, TotalHours: 2},
			},
		}
		s.mockQueries.EXPECT().Summaries(gomock.Any(), queries.SessionFilter{Date: "2025-05-02"}).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.SummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(3, response.All.Count)
		s.Len(response.Rooms, 2)
		s.Equal("RED RUBY", response.Rooms[0].Room)
	})
}

func (s *SessionHandlerTestSuite) TestExport() {
	url := "/sessions/export"

	s.Run("success: streams CSV with a download header", func() {
		content := []byte("Tanggal,Mulai\n02 Mei 2025,19:00\n")
		filename := "treebox-rental-2025-05-02.csv"
		s.mockQueries.EXPECT().ExportCSV(gomock.Any(), gomock.Any()).
			Return(content, filename, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(fmt.Sprintf("attachment; filename=%q", filename), rec.Header().Get("Content-Disposition"))
		s.Equal("text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		s.Equal(string(content), rec.Body.String())
	})

	s.Run("error: 404 when nothing matches the filter", func() {
		s.mockQueries.EXPECT().ExportCSV(gomock.Any(), gomock.Any()).
			Return(nil, "", queries.ErrNothingToExport).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No sessions match the export filter")
	})
}
