//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"treebox/internal/handler/api"
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

type RoomHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRoomCommands
	mockQueries  *queriesmock.MockRoomQueries
	handler      *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/rooms", s.handler.List)
	s.router.POST("/rooms", s.handler.Create)
	s.router.PUT("/rooms/:id", s.handler.Update)
	s.router.DELETE("/rooms/:id", s.handler.Deactivate)
	s.router.POST("/rooms/:id/activate", s.handler.Activate)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func (s *RoomHandlerTestSuite) TestList() {
	url := "/rooms"

	s.Run("success: lists active rooms by default", func() {
		views := []*queries.RoomView{
			builder.NewRoomBuilder().BuildView(),
			builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
				b.Name, b.ShortCode = "BLACK GOLD", "BG"
			}).BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), false).Return(views, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp []map[string]any
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("RED RUBY", resp[0]["name"])
	})

	s.Run("success: include_inactive widens the listing", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), true).Return([]*queries.RoomView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?include_inactive=true", nil, "")

		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: query failure returns 500", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), false).Return(nil, errors.New("boom"))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *RoomHandlerTestSuite) TestCreate() {
	url := "/rooms"

	s.Run("success: registers a room", func() {
		reqBody := builder.NewRoomBuilder().BuildCreateRequestDTO()
		view := builder.NewRoomBuilder().BuildView()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, p commands.CreateRoomParams) (*queries.RoomView, error) {
				s.Equal("RED RUBY", p.Name)
				s.Equal("RR", p.ShortCode)
				s.Equal("gem", p.Detail.Icon)
				return view, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
	})

	s.Run("error: missing name fails binding", func() {
		reqBody := testutil.DtoMap(s.T(), builder.NewRoomBuilder().BuildCreateRequestDTO(),
			testutil.Field("name", nil))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: duplicate name returns 409", func() {
		reqBody := builder.NewRoomBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateRoom)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Room name already registered")
	})
}

func (s *RoomHandlerTestSuite) TestUpdate() {
	s.Run("success: updates name and short code", func() {
		id := uuid.New()
		view := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
			b.Name, b.ShortCode = "RED RUBY VIP", "RV"
		}).BuildView()
		reqBody := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
			b.Name, b.ShortCode = "RED RUBY VIP", "RV"
		}).BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/rooms/"+id.String(), reqBody, "")

		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: malformed id returns 400", func() {
		reqBody := builder.NewRoomBuilder().BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/rooms/not-a-uuid", reqBody, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid room ID format")
	})

	s.Run("error: unknown room returns 404", func() {
		id := uuid.New()
		reqBody := builder.NewRoomBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrRoomNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/rooms/"+id.String(), reqBody, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})
}

func (s *RoomHandlerTestSuite) TestActivation() {
	s.Run("success: deactivate flips is_active off", func() {
		id := uuid.New()
		view := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.IsActive = false }).BuildView()
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, false).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/rooms/"+id.String(), nil, "")

		var resp map[string]any
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(false, resp["is_active"])
	})

	s.Run("success: activate flips is_active back on", func() {
		id := uuid.New()
		view := builder.NewRoomBuilder().BuildView()
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, true).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms/"+id.String()+"/activate", nil, "")

		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: unknown room returns 404", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, false).Return(nil, commands.ErrRoomNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/rooms/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})
}
