package queries

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"treebox/internal/domain/schedule"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/clock"
	"treebox/internal/pkg/config"
	"treebox/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSessionNotFound = errs.New("session not found")
	ErrQueryFailed     = errs.New("query failed")
	ErrNothingToExport = errs.New("no sessions match the export filter")
)

// FilterAllRooms is the room filter value that disables room narrowing.
const FilterAllRooms = "ALL"

type SessionReadStore interface {
	ListOrdered(ctx context.Context, q db.Querier) ([]*SessionView, error)
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*SessionView, error)
}

type RoomCatalog interface {
	List(ctx context.Context, q db.Querier, includeInactive bool) ([]*RoomView, error)
}

// SummaryResult mirrors the dashboard cards: one aggregate over every
// room plus a per-room breakdown in registry order.
type SummaryResult struct {
	All   RoomSummary   `json:"all"`
	Rooms []RoomSummary `json:"rooms"`
}

type SessionQueries interface {
	List(ctx context.Context, f SessionFilter) ([]*SessionView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Summaries(ctx context.Context, f SessionFilter) (*SummaryResult, error)
	ExportCSV(ctx context.Context, f SessionFilter) ([]byte, string, error)
}

type sessionQueriesImpl struct {
	sessions SessionReadStore
	rooms    RoomCatalog
	pool     *pgxpool.Pool
	day      schedule.BusinessDay
	clock    clock.Clock
}

func NewSessionQueries(
	sessions SessionReadStore,
	rooms RoomCatalog,
	pool *pgxpool.Pool,
	cfg config.Config,
	clk clock.Clock,
) SessionQueries {
	return &sessionQueriesImpl{
		sessions: sessions,
		rooms:    rooms,
		pool:     pool,
		day:      schedule.NewBusinessDay(cfg.Booking.BusinessDayStart),
		clock:    clk,
	}
}

func (s *sessionQueriesImpl) List(ctx context.Context, f SessionFilter) ([]*SessionView, error) {
	views, err := s.sessions.ListOrdered(ctx, s.pool)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return s.applyFilter(views, f), nil
}

func (s *sessionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	view, err := s.sessions.FindByID(ctx, s.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

// Summaries aggregates by the date filter only. Room and search filters
// narrow the table, not the cards, so the cards always show the whole
// business day being looked at.
func (s *sessionQueriesImpl) Summaries(ctx context.Context, f SessionFilter) (*SummaryResult, error) {
	views, err := s.sessions.ListOrdered(ctx, s.pool)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	views = s.filterByDate(views, f.Date)

	order, err := s.roomOrder(ctx)
	if err != nil {
		return nil, err
	}

	result := &SummaryResult{All: RoomSummary{Room: FilterAllRooms}}
	for _, name := range order {
		summary := RoomSummary{Room: name}
		for _, v := range views {
			if v.Room != name {
				continue
			}
			summary.Count++
			summary.TotalHours += resolvedQty(v)
		}
		result.Rooms = append(result.Rooms, summary)
	}
	for _, v := range views {
		result.All.Count++
		result.All.TotalHours += resolvedQty(v)
	}
	return result, nil
}

// ExportCSV renders the filtered sessions with the header row and cell
// layout the venue's old spreadsheet exports used, ordered by room
// registry position and then by start time. Returns the content and a
// dated file name.
func (s *sessionQueriesImpl) ExportCSV(ctx context.Context, f SessionFilter) ([]byte, string, error) {
	views, err := s.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	if len(views) == 0 {
		return nil, "", ErrNothingToExport
	}

	rooms, err := s.rooms.List(ctx, s.pool, true)
	if err != nil {
		return nil, "", errs.Mark(err, ErrQueryFailed)
	}
	position := make(map[string]int, len(rooms))
	shortCodes := make(map[string]string, len(rooms))
	for i, r := range rooms {
		position[r.Name] = i
		shortCodes[r.Name] = r.ShortCode
	}

	slices.SortStableFunc(views, func(a, b *SessionView) int {
		pa, ok := position[a.Room]
		if !ok {
			pa = len(position)
		}
		pb, ok := position[b.Room]
		if !ok {
			pb = len(position)
		}
		if pa != pb {
			return pa - pb
		}
		return a.WaktuMulai.Compare(b.WaktuMulai)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"Tanggal", "Mulai", "Selesai", "Durasi (Jam)",
		"Ruangan", "Kode Ruangan", "Nama Pelanggan", "Nama Kasir",
		"No HP", "Catatan", "Dibuat Pada",
	}
	if err := w.Write(header); err != nil {
		return nil, "", errs.Mark(err, ErrQueryFailed)
	}

	for _, v := range views {
		short, ok := shortCodes[v.Room]
		if !ok {
			short = "--"
		}
		row := []string{
			formatDateID(v.WaktuMulai),
			v.WaktuMulai.Format("15:04"),
			v.WaktuSelesai.Format("15:04"),
			strconv.Itoa(resolvedQty(v)),
			v.Room,
			short,
			v.NamaPelanggan,
			v.NamaKasir,
			deref(v.NoHp),
			strings.TrimSpace(deref(v.Catatan)),
			fmt.Sprintf("%s %s", formatDateID(v.CreatedAt), v.CreatedAt.Format("15:04")),
		}
		if err := w.Write(row); err != nil {
			return nil, "", errs.Mark(err, ErrQueryFailed)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", errs.Mark(err, ErrQueryFailed)
	}

	filename := fmt.Sprintf("treebox-rental-%s.csv", s.clock.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *sessionQueriesImpl) applyFilter(views []*SessionView, f SessionFilter) []*SessionView {
	views = s.filterByDate(views, f.Date)

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		views = filter(views, func(v *SessionView) bool {
			for _, text := range []string{v.NamaPelanggan, v.NamaKasir, deref(v.NoHp), deref(v.Catatan), v.Room} {
				if text != "" && strings.Contains(strings.ToLower(text), term) {
					return true
				}
			}
			return false
		})
	}

	if f.Room != "" && f.Room != FilterAllRooms {
		roomKey := strings.ToLower(f.Room)
		views = filter(views, func(v *SessionView) bool {
			return strings.ToLower(v.Room) == roomKey
		})
	}

	return views
}

// filterByDate buckets by business date, so a session starting 01:00
// still shows under the night it belongs to.
func (s *sessionQueriesImpl) filterByDate(views []*SessionView, date string) []*SessionView {
	if date == "" {
		return views
	}
	return filter(views, func(v *SessionView) bool {
		return s.day.Key(v.WaktuMulai) == date
	})
}

func (s *sessionQueriesImpl) roomOrder(ctx context.Context) ([]string, error) {
	rooms, err := s.rooms.List(ctx, s.pool, false)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	return names, nil
}

func filter(views []*SessionView, keep func(*SessionView) bool) []*SessionView {
	out := make([]*SessionView, 0, len(views))
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func resolvedQty(v *SessionView) int {
	return schedule.ResolveQty(int(v.QtyJam), v.WaktuMulai, v.WaktuSelesai)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var monthShortID = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// formatDateID renders "02 Mei 2025" the way the dashboard shows dates.
func formatDateID(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthShortID[t.Month()-1], t.Year())
}
