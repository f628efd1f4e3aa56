package repository

import (
	"context"

	"treebox/internal/domain/room"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

const roomColumns = `id, name, short_code, icon, accent, badge_bg, badge_text, row_bg, border, is_active, created_at, updated_at`

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) Create(ctx context.Context, q db.Querier, rm *room.Room) (uuid.UUID, error) {
	const sql = `
		INSERT INTO rooms (id, name, short_code, icon, accent, badge_bg, badge_text, row_bg, border, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	d := rm.Detail()
	var id uuid.UUID
	err := q.QueryRow(ctx, sql,
		rm.ID(), rm.Name(), rm.ShortCode(),
		d.Icon, d.Accent, d.BadgeBg, d.BadgeText, d.RowBg, d.Border,
		rm.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err, infra.KindFromPgErr(err))
	}

	return id, nil
}

func (r *RoomRepository) Update(ctx context.Context, q db.Querier, rm *room.Room) error {
	const sql = `
		UPDATE rooms
		SET name = $2, short_code = $3, icon = $4, accent = $5, badge_bg = $6,
		    badge_text = $7, row_bg = $8, border = $9, is_active = $10, updated_at = now()
		WHERE id = $1`

	d := rm.Detail()
	tag, err := q.Exec(ctx, sql,
		rm.ID(), rm.Name(), rm.ShortCode(),
		d.Icon, d.Accent, d.BadgeBg, d.BadgeText, d.RowBg, d.Border,
		rm.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err, infra.KindFromPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *RoomRepository) SetActive(ctx context.Context, q db.Querier, id uuid.UUID, active bool) error {
	tag, err := q.Exec(ctx, `UPDATE rooms SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to change room active flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.RoomView, error) {
	row := q.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)

	view, err := scanRoomView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by id", err)
	}

	return view, nil
}

func (r *RoomRepository) List(ctx context.Context, q db.Querier, includeInactive bool) ([]*queries.RoomView, error) {
	sql := `SELECT ` + roomColumns + ` FROM rooms`
	if !includeInactive {
		sql += ` WHERE is_active`
	}
	// Registry order is first-registered first, the order the dashboard
	// renders rooms in.
	sql += ` ORDER BY created_at ASC, name ASC`

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rooms", err)
	}

	return views, nil
}

// ActiveNames returns the room registry the scheduling operations are
// allowed to validate against.
func (r *RoomRepository) ActiveNames(ctx context.Context, q db.Querier) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT name FROM rooms WHERE is_active ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active room names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room names", err)
	}

	return names, nil
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	var v queries.RoomView
	err := row.Scan(
		&v.ID, &v.Name, &v.ShortCode, &v.Icon, &v.Accent,
		&v.BadgeBg, &v.BadgeText, &v.RowBg, &v.Border,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
