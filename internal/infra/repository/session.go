package repository

import (
	"context"
	"time"

	"treebox/internal/domain/session"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

const sessionColumns = `id, room, nama_pelanggan, nama_kasir, no_hp, catatan, waktu_mulai, waktu_selesai, qty_jam, created_at, updated_at`

type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, q db.Querier, s *session.Session) (uuid.UUID, error) {
	const sql = `
		INSERT INTO rental_sesi (id, room, nama_pelanggan, nama_kasir, no_hp, catatan, waktu_mulai, waktu_selesai, qty_jam)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
		RETURNING id`

	var id uuid.UUID
	err := q.QueryRow(ctx, sql,
		s.ID(), s.Room(), s.CustomerName(), s.CashierName(), s.Phone(), s.Note(),
		s.Interval().Start(), s.Interval().End(), s.QtyHours(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create session", err, infra.KindFromPgErr(err))
	}

	return id, nil
}

func (r *SessionRepository) Update(ctx context.Context, q db.Querier, s *session.Session) error {
	const sql = `
		UPDATE rental_sesi
		SET room = $2, nama_pelanggan = $3, nama_kasir = $4, no_hp = NULLIF($5, ''),
		    catatan = NULLIF($6, ''), waktu_mulai = $7, waktu_selesai = $8, qty_jam = $9,
		    updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, sql,
		s.ID(), s.Room(), s.CustomerName(), s.CashierName(), s.Phone(), s.Note(),
		s.Interval().Start(), s.Interval().End(), s.QtyHours(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update session", err, infra.KindFromPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, q db.Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM rental_sesi WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}

	return nil
}

// FindOverlappingIDs returns the ids of sessions in room whose half-open
// window intersects [start, end). Conflicting rows are locked so a
// concurrent insert on the same slot serializes behind this check; the
// exclusion constraint on (room, time range) remains the backstop.
func (r *SessionRepository) FindOverlappingIDs(ctx context.Context, q db.Querier, room string, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	sql := `
		SELECT id FROM rental_sesi
		WHERE room = $1 AND waktu_mulai < $2 AND waktu_selesai > $3`
	args := []any{room, end, start}
	if excludeID != nil {
		sql += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	sql += ` FOR UPDATE`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping sessions", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping session", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping sessions", err)
	}

	return ids, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.SessionView, error) {
	row := q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM rental_sesi WHERE id = $1`, id)

	view, err := scanSessionView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session by id", err)
	}

	return view, nil
}

// ListOrdered returns every session ordered by start time ascending;
// filtering happens on the query side, as the dashboard filters do.
func (r *SessionRepository) ListOrdered(ctx context.Context, q db.Querier) ([]*queries.SessionView, error) {
	rows, err := q.Query(ctx, `SELECT `+sessionColumns+` FROM rental_sesi ORDER BY waktu_mulai ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sessions", err)
	}
	defer rows.Close()

	var views []*queries.SessionView
	for rows.Next() {
		view, err := scanSessionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan session", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read sessions", err)
	}

	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionView(row rowScanner) (*queries.SessionView, error) {
	var v queries.SessionView
	err := row.Scan(
		&v.ID, &v.Room, &v.NamaPelanggan, &v.NamaKasir, &v.NoHp, &v.Catatan,
		&v.WaktuMulai, &v.WaktuSelesai, &v.QtyJam, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
