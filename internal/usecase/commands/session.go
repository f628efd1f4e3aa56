package commands

import (
	"context"
	"slices"
	"time"

	"treebox/internal/domain/schedule"
	"treebox/internal/domain/session"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/config"
	"treebox/internal/pkg/errs"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUnknownRoom             = errs.New("room is not in the active registry")
	ErrScheduleConflict        = errs.New("schedule conflict")
	ErrSessionNotFound         = errs.New("session not found")
	ErrInvalidTimeWindow       = errs.New("invalid time window")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateSessionParams struct {
	Room          string
	NamaPelanggan string
	NamaKasir     string
	NoHp          string
	Catatan       string
	Tanggal       time.Time // calendar day the slot times anchor to
	WaktuMulai    string    // "HH:MM"
	WaktuSelesai  string    // used when QtyJam is absent
	QtyJam        int       // preferred when positive
}

type QuickAddParams struct {
	Room          string
	NamaPelanggan string
	NamaKasir     string
	Tanggal       time.Time
	WaktuMulai    string
}

type UpdateSessionParams struct {
	Room          string
	NamaPelanggan string
	NamaKasir     string
	NoHp          string
	Catatan       string
	WaktuMulai    string
	QtyJam        int
}

type SessionRepository interface {
	Create(ctx context.Context, q db.Querier, s *session.Session) (uuid.UUID, error)
	Update(ctx context.Context, q db.Querier, s *session.Session) error
	Delete(ctx context.Context, q db.Querier, id uuid.UUID) error
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.SessionView, error)
	FindOverlappingIDs(ctx context.Context, q db.Querier, room string, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error)
}

type RoomRegistry interface {
	ActiveNames(ctx context.Context, q db.Querier) ([]string, error)
}

type SessionCommands interface {
	Create(ctx context.Context, p CreateSessionParams) (*queries.SessionView, error)
	QuickAdd(ctx context.Context, p QuickAddParams) (*queries.SessionView, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateSessionParams) (*queries.SessionView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionCommandsImpl struct {
	sessions SessionRepository
	rooms    RoomRegistry
	pool     *pgxpool.Pool
	booking  config.BookingConfig
}

func NewSessionCommands(
	sessions SessionRepository,
	rooms RoomRegistry,
	pool *pgxpool.Pool,
	cfg config.Config,
) SessionCommands {
	return &sessionCommandsImpl{
		sessions: sessions,
		rooms:    rooms,
		pool:     pool,
		booking:  cfg.Booking,
	}
}

func (c *sessionCommandsImpl) Create(ctx context.Context, p CreateSessionParams) (*queries.SessionView, error) {
	if err := c.validateRoom(ctx, p.Room); err != nil {
		return nil, err
	}

	base := schedule.StartOfDay(p.Tanggal)
	safeStart := schedule.NormalizeStart(p.WaktuMulai)

	var qty int
	var safeEnd string
	if p.QtyJam > 0 {
		derived := schedule.DeriveEndFromQty(base, safeStart, p.QtyJam, c.booking.MaxHours)
		qty, safeEnd = derived.Qty, derived.End
	} else {
		safeEnd = schedule.NormalizeEnd(safeStart, p.WaktuSelesai)
		qty = schedule.ClampQty(safeStart, schedule.CalculateQty(base, safeStart, safeEnd), c.booking.MaxHours)
		safeEnd = schedule.DeriveEndFromQty(base, safeStart, qty, c.booking.MaxHours).End
	}

	interval, err := schedule.NewInterval(schedule.Combine(base, safeStart), schedule.Combine(base, safeEnd))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeWindow)
	}

	entity, err := session.NewSession(p.Room, p.NamaPelanggan, p.NamaKasir, p.NoHp, p.Catatan, interval, qty)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return c.commitSession(ctx, entity, nil)
}

func (c *sessionCommandsImpl) QuickAdd(ctx context.Context, p QuickAddParams) (*queries.SessionView, error) {
	return c.Create(ctx, CreateSessionParams{
		Room:          p.Room,
		NamaPelanggan: p.NamaPelanggan,
		NamaKasir:     p.NamaKasir,
		Tanggal:       p.Tanggal,
		WaktuMulai:    p.WaktuMulai,
		QtyJam:        1,
	})
}

func (c *sessionCommandsImpl) Update(ctx context.Context, id uuid.UUID, p UpdateSessionParams) (*queries.SessionView, error) {
	existing, err := c.sessions.FindByID(ctx, c.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := c.validateRoom(ctx, p.Room); err != nil {
		return nil, err
	}

	// The edited slot stays anchored to the day the session was booked on.
	base := schedule.StartOfDay(existing.WaktuMulai)
	safeStart := schedule.NormalizeStart(p.WaktuMulai)
	derived := schedule.DeriveEndFromQty(base, safeStart, p.QtyJam, c.booking.MaxHours)

	interval, err := schedule.NewInterval(schedule.Combine(base, safeStart), schedule.Combine(base, derived.End))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeWindow)
	}

	if _, err := session.NewSession(p.Room, p.NamaPelanggan, p.NamaKasir, p.NoHp, p.Catatan, interval, derived.Qty); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	entity := session.ReconstructSession(
		id, p.Room, p.NamaPelanggan, p.NamaKasir, p.NoHp, p.Catatan,
		interval, derived.Qty, existing.CreatedAt, existing.UpdatedAt,
	)

	return c.commitSession(ctx, entity, &id)
}

func (c *sessionCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.sessions.Delete(ctx, c.pool, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSessionNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// commitSession runs the overlap check and the write in one transaction
// so two clients racing for the same slot serialize instead of both
// passing an advisory check. excludeID carries the session's own id
// during edits.
func (c *sessionCommandsImpl) commitSession(ctx context.Context, entity *session.Session, excludeID *uuid.UUID) (*queries.SessionView, error) {
	id, err := db.WithDefaultRetry(ctx, c.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		conflicts, err := c.sessions.FindOverlappingIDs(
			ctx, tx, entity.Room(), entity.Interval().Start(), entity.Interval().End(), excludeID,
		)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return uuid.Nil, ErrScheduleConflict
		}

		if excludeID != nil {
			if err := c.sessions.Update(ctx, tx, entity); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return uuid.Nil, ErrScheduleConflict
				}
				return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			return entity.ID(), nil
		}

		createdID, err := c.sessions.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, ErrScheduleConflict
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return createdID, nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.sessions.FindByID(ctx, c.pool, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// validateRoom checks the registry before any conflict query is issued:
// an unrecognized room is a validation failure, not a conflict.
func (c *sessionCommandsImpl) validateRoom(ctx context.Context, room string) error {
	names, err := c.rooms.ActiveNames(ctx, c.pool)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !slices.Contains(names, room) {
		return ErrUnknownRoom
	}
	return nil
}
