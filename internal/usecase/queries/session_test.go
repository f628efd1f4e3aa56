//go:build unit

package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"treebox/internal/infra"
	"treebox/internal/pkg/clock"
	"treebox/internal/pkg/config"
	"treebox/internal/usecase/queries"
	"treebox/tests/common/builder"
	readstoremock "treebox/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionQueriesTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockSessions *readstoremock.MockSessionReadStore
	mockRooms    *readstoremock.MockRoomCatalog
	clock        *clock.MockClock
	queries      queries.SessionQueries
}

func (s *SessionQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = readstoremock.NewMockSessionReadStore(s.mockCtrl)
	s.mockRooms = readstoremock.NewMockRoomCatalog(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 5, 2, 21, 0, 0, 0, time.UTC))
	s.queries = queries.NewSessionQueries(s.mockSessions, s.mockRooms, nil, config.NewTestConfig(), s.clock)
}

func (s *SessionQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionQueriesSuite(t *testing.T) {
	suite.Run(t, new(SessionQueriesTestSuite))
}

func (s *SessionQueriesTestSuite) view(mutate func(*builder.SessionBuilder)) *queries.SessionView {
	return builder.NewSessionBuilder().With(mutate).BuildView()
}

func (s *SessionQueriesTestSuite) roomViews(names ...string) []*queries.RoomView {
	rooms := make([]*queries.RoomView, len(names))
	for i, name := range names {
		short := strings.ToUpper(name[:1]) + "X"
		rooms[i] = &queries.RoomView{ID: uuid.New(), Name: name, ShortCode: short, IsActive: true}
	}
	return rooms
}

func (s *SessionQueriesTestSuite) TestList() {
	s.Run("date filter buckets by business day, not calendar day", func() {
		evening := s.view(func(b *builder.SessionBuilder) {
			b.WaktuMulai, b.WaktuSelesai = "22:00", "23:00"
		})
		// Past midnight: starts 01:00 on May 3 but belongs to the May 2 night.
		afterMidnight := s.view(func(b *builder.SessionBuilder) {
			b.Tanggal = time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
			b.WaktuMulai, b.WaktuSelesai = "01:00", "02:00"
		})
		// Next business day starts at 06:00.
		nextMorning := s.view(func(b *builder.SessionBuilder) {
			b.Tanggal = time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
			b.WaktuMulai, b.WaktuSelesai = "10:00", "11:00"
		})
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{evening, afterMidnight, nextMorning}, nil).Times(1)

		views, err := s.queries.List(context.Background(), queries.SessionFilter{Date: "2025-05-02"})

		s.Require().NoError(err)
		s.Len(views, 2)
		s.Equal(evening.ID, views[0].ID)
		s.Equal(afterMidnight.ID, views[1].ID)
	})

	s.Run("search matches customer, cashier, phone, note and room", func() {
		match := s.view(func(b *builder.SessionBuilder) { b.Catatan = "member VIP" })
		miss := s.view(func(b *builder.SessionBuilder) { b.Catatan = "" })
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{match, miss}, nil).Times(1)

		views, err := s.queries.List(context.Background(), queries.SessionFilter{Search: "vip"})

		s.Require().NoError(err)
		s.Len(views, 1)
		s.Equal(match.ID, views[0].ID)
	})

	s.Run("room filter narrows, ALL disables it", func() {
		ruby := s.view(func(b *builder.SessionBuilder) { b.Room = "RED RUBY" })
		gold := s.view(func(b *builder.SessionBuilder) { b.Room = "BLACK GOLD" })
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{ruby, gold}, nil).Times(2)

		views, err := s.queries.List(context.Background(), queries.SessionFilter{Room: "red ruby"})
		s.Require().NoError(err)
		s.Len(views, 1)
		s.Equal(ruby.ID, views[0].ID)

		views, err = s.queries.List(context.Background(), queries.SessionFilter{Room: queries.FilterAllRooms})
		s.Require().NoError(err)
		s.Len(views, 2)
	})
}

func (s *SessionQueriesTestSuite) TestGetByID() {
	id := uuid.New()

	s.Run("success: returns the view", func() {
		view := s.view(func(b *builder.SessionBuilder) {})
		s.mockSessions.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(view, nil).Times(1)

		actual, err := s.queries.GetByID(context.Background(), id)
		s.Require().NoError(err)
		s.Equal(view.ID, actual.ID)
	})

	s.Run("error: missing row maps to not found", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("session not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := s.queries.GetByID(context.Background(), id)
		s.ErrorIs(err, queries.ErrSessionNotFound)
	})
}

func (s *SessionQueriesTestSuite) TestSummaries() {
	s.Run("per-room cards follow registry order and count resolved hours", func() {
		sessions := []*queries.SessionView{
			s.view(func(b *builder.SessionBuilder) { b.Room = "BLACK GOLD"; b.QtyJam = 3 }),
			s.view(func(b *builder.SessionBuilder) { b.Room = "RED RUBY"; b.QtyJam = 2 }),
			// Stored qty of zero: hours come from the interval instead.
			s.view(func(b *builder.SessionBuilder) {
				b.Room = "RED RUBY"
				b.QtyJam = 0
				b.WaktuMulai, b.WaktuSelesai = "10:00", "11:00"
			}),
		}
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return(sessions, nil).Times(1)
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any(), false).
			Return(s.roomViews("RED RUBY", "BLACK GOLD"), nil).Times(1)

		result, err := s.queries.Summaries(context.Background(), queries.SessionFilter{})

		s.Require().NoError(err)
		s.Equal(queries.FilterAllRooms, result.All.Room)
		s.Equal(3, result.All.Count)
		s.Equal(6, result.All.TotalHours)

		s.Require().Len(result.Rooms, 2)
		s.Equal("RED RUBY", result.Rooms[0].Room)
		s.Equal(2, result.Rooms[0].Count)
		s.Equal(3, result.Rooms[0].TotalHours)
		s.Equal("BLACK GOLD", result.Rooms[1].Room)
		s.Equal(1, result.Rooms[1].Count)
		s.Equal(3, result.Rooms[1].TotalHours)
	})

	s.Run("room and search filters do not narrow the cards", func() {
		sessions := []*queries.SessionView{
			s.view(func(b *builder.SessionBuilder) { b.Room = "RED RUBY" }),
			s.view(func(b *builder.SessionBuilder) { b.Room = "BLACK GOLD" }),
		}
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return(sessions, nil).Times(1)
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any(), false).
			Return(s.roomViews("RED RUBY", "BLACK GOLD"), nil).Times(1)

		result, err := s.queries.Summaries(context.Background(),
			queries.SessionFilter{Room: "RED RUBY", Search: "budi"})

		s.Require().NoError(err)
		s.Equal(2, result.All.Count)
	})
}

func (s *SessionQueriesTestSuite) TestExportCSV() {
	s.Run("rows are ordered by room position then start, unknown rooms last", func() {
		rubyLate := s.view(func(b *builder.SessionBuilder) {
			b.Room = "RED RUBY"
			b.WaktuMulai, b.WaktuSelesai = "20:00", "21:00"
		})
		rubyEarly := s.view(func(b *builder.SessionBuilder) {
			b.Room = "RED RUBY"
			b.WaktuMulai, b.WaktuSelesai = "10:00", "11:00"
		})
		gold := s.view(func(b *builder.SessionBuilder) { b.Room = "BLACK GOLD" })
		retired := s.view(func(b *builder.SessionBuilder) { b.Room = "OLD LOUNGE" })

		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{retired, rubyLate, gold, rubyEarly}, nil).Times(1)
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any(), true).
			Return(s.roomViews("RED RUBY", "BLACK GOLD"), nil).Times(1)

		content, filename, err := s.queries.ExportCSV(context.Background(), queries.SessionFilter{})

		s.Require().NoError(err)
		s.Equal("treebox-rental-2025-05-02.csv", filename)

		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		s.Require().Len(lines, 5)
		s.Equal("Tanggal,Mulai,Selesai,Durasi (Jam),Ruangan,Kode Ruangan,Nama Pelanggan,Nama Kasir,No HP,Catatan,Dibuat Pada", lines[0])
		s.Contains(lines[1], "RED RUBY")
		s.Contains(lines[1], "10:00")
		s.Contains(lines[2], "RED RUBY")
		s.Contains(lines[2], "20:00")
		s.Contains(lines[3], "BLACK GOLD")
		// Unknown room sorts last with the placeholder short code.
		s.Contains(lines[4], "OLD LOUNGE")
		s.Contains(lines[4], "--")
	})

	s.Run("dates render in the Indonesian short-month format", func() {
		view := s.view(func(b *builder.SessionBuilder) {
			b.Tanggal = time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)
			b.WaktuMulai, b.WaktuSelesai = "19:00", "20:00"
		})
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{view}, nil).Times(1)
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any(), true).
			Return(s.roomViews("RED RUBY"), nil).Times(1)

		content, _, err := s.queries.ExportCSV(context.Background(), queries.SessionFilter{})

		s.Require().NoError(err)
		s.Contains(string(content), "17 Agu 2025")
	})

	s.Run("error: empty result refuses to export", func() {
		s.mockSessions.EXPECT().ListOrdered(gomock.Any(), gomock.Any()).
			Return([]*queries.SessionView{}, nil).Times(1)

		_, _, err := s.queries.ExportCSV(context.Background(), queries.SessionFilter{})
		s.ErrorIs(err, queries.ErrNothingToExport)
	})
}
