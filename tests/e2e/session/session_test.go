//go:build e2e

package session_test

import (
	"net/http"
	"testing"
	"time"

	"treebox/internal/handler/dto/response"
	"treebox/tests/common/authtest"
	"treebox/tests/common/builder"
	"treebox/tests/common/httptest"
	"treebox/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	sessionsURL = "/api/sessions"
	summaryURL  = "/api/sessions/summary"
	exportURL   = "/api/sessions/export"
)

type SessionSuite struct {
	e2e.SharedSuite
}

func TestSessionSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) login() string {
	return authtest.CreateAndLogin(s.T(), s.DB, s.Router, "operator@treebox.id", "Operator", "crew")
}

func (s *SessionSuite) TestCreateSession() {
	s.Run("Normal case: booking a free slot succeeds", func() {
		t := s.T()
		token := s.login()

		reqBody := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "RED RUBY", created.Room)
		require.Equal(t, int32(2), created.QtyJam)
		require.Equal(t, 2*time.Hour, created.WaktuSelesai.Sub(created.WaktuMulai))

		// The stored row round-trips through GET unchanged.
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, sessionsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var fetched response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &fetched))
		if diff := cmp.Diff(created, fetched, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Fatalf("created and fetched session differ (-created +fetched):\n%s", diff)
		}
	})

	s.Run("Error case: overlapping slot in the same room is rejected", func() {
		t := s.T()
		token := s.login()

		first := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// 20:00-22:00 overlaps the 19:00-21:00 booking.
		overlapping := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.WaktuMulai, b.WaktuSelesai = "20:00", "22:00"
		}).BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, overlapping, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Room is already booked for that slot")
	})

	s.Run("Normal case: back-to-back bookings do not conflict", func() {
		t := s.T()
		token := s.login()

		first := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		adjacent := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.WaktuMulai, b.WaktuSelesai = "21:00", "22:00"
			b.QtyJam = 1
		}).BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, adjacent, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Normal case: the same slot in another room is free", func() {
		t := s.T()
		token := s.login()

		first := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		otherRoom := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.Room = "BLACK GOLD"
		}).BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, otherRoom, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Normal case: duration is clamped to closing time", func() {
		t := s.T()
		token := s.login()

		// Six hours from 21:00 would run past 23:00; end clamps there.
		late := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.WaktuMulai = "21:00"
			b.WaktuSelesai = ""
			b.QtyJam = 6
		}).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, late, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, int32(2), created.QtyJam)
		require.Equal(t, 23, created.WaktuSelesai.Hour())
	})

	s.Run("Error case: unknown room is rejected before any booking", func() {
		t := s.T()
		token := s.login()

		unknown := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.Room = "PURPLE HAZE"
		}).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, unknown, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Room is not registered")
	})

	s.Run("Error case: unauthenticated request is rejected", func() {
		t := s.T()
		reqBody := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *SessionSuite) TestQuickAdd() {
	s.Run("Normal case: cashier defaults to the signed-in operator", func() {
		t := s.T()
		token := s.login()

		reqBody := map[string]any{
			"room":           "RED RUBY",
			"nama_pelanggan": "Budi Santoso",
			"tanggal":        "2025-05-02",
			"waktu_mulai":    "19:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL+"/quick", reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "Operator", created.NamaKasir)
		require.Equal(t, int32(1), created.QtyJam)
	})
}

func (s *SessionSuite) TestUpdateSession() {
	s.Run("Error case: moving into an occupied slot is rejected", func() {
		t := s.T()
		token := s.login()

		first := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		second := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.WaktuMulai, b.WaktuSelesai = "15:00", "16:00"
			b.QtyJam = 1
		}).BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, second, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var moved response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &moved))

		update := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.WaktuMulai = "19:00"
			b.QtyJam = 2
		}).BuildUpdateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, sessionsURL+"/"+moved.ID.String(), update, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Room is already booked for that slot")
	})

	s.Run("Normal case: a session can keep its own slot", func() {
		t := s.T()
		token := s.login()

		first := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		update := builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
			b.NamaPelanggan = "Budi S."
		}).BuildUpdateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, sessionsURL+"/"+created.ID.String(), update, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "Budi S.", updated.NamaPelanggan)
	})
}

func (s *SessionSuite) TestDeleteSession() {
	s.Run("Normal case: a deleted slot can be rebooked", func() {
		t := s.T()
		token := s.login()

		reqBody := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.SessionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, sessionsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func (s *SessionSuite) TestSummariesAndExport() {
	s.Run("Normal case: summaries count hours per room in registry order", func() {
		t := s.T()
		token := s.login()

		for _, reqBody := range []any{
			builder.NewSessionBuilder().BuildCreateRequestDTO(),
			builder.NewSessionBuilder().With(func(b *builder.SessionBuilder) {
				b.Room = "BLACK GOLD"
				b.WaktuMulai, b.WaktuSelesai = "10:00", "11:00"
				b.QtyJam = 1
			}).BuildCreateRequestDTO(),
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, summaryURL+"?date=2025-05-02", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var summary response.SummaryResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &summary))
		require.Equal(t, 2, summary.All.Count)
		require.Equal(t, 3, summary.All.TotalHours)
		require.Len(t, summary.Rooms, 5)
		require.Equal(t, "BROWN WALLNUT", summary.Rooms[0].Room)
	})

	s.Run("Normal case: export downloads a CSV attachment", func() {
		t := s.T()
		token := s.login()

		reqBody := builder.NewSessionBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, exportURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		require.Contains(t, w.Body.String(), "Nama Pelanggan")
		require.Contains(t, w.Body.String(), "Budi Santoso")
	})

	s.Run("Error case: export with no matching sessions returns 404", func() {
		t := s.T()
		token := s.login()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, exportURL+"?date=1999-01-01", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "No sessions match the export filter")
	})
}
