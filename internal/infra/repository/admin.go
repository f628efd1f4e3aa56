package repository

import (
	"context"

	"treebox/internal/domain/admin"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

const adminColumns = `id, email, display_name, role, is_active, created_at, updated_at`

type AdminRepository struct{}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{}
}

func (r *AdminRepository) Create(ctx context.Context, q db.Querier, a *admin.Admin, passwordHash string) (uuid.UUID, error) {
	const sql = `
		INSERT INTO admins (id, email, display_name, role, is_active, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := q.QueryRow(ctx, sql,
		a.ID(), a.Email(), a.DisplayName(), a.Role().String(), a.IsActive(), passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create admin", err, infra.KindFromPgErr(err))
	}

	return id, nil
}

func (r *AdminRepository) UpdateProfile(ctx context.Context, q db.Querier, a *admin.Admin) error {
	const sql = `
		UPDATE admins
		SET display_name = $2, role = $3, is_active = $4, updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, sql, a.ID(), a.DisplayName(), a.Role().String(), a.IsActive())
	if err != nil {
		return infra.WrapRepoErr("failed to update admin", err, infra.KindFromPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("admin not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, q db.Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete admin", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("admin not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *AdminRepository) FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.AdminView, error) {
	row := q.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)

	view, err := scanAdminView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin by id", err)
	}

	return view, nil
}

// FindByEmail also returns the stored password hash for credential
// verification; the hash never leaves the auth command.
func (r *AdminRepository) FindByEmail(ctx context.Context, q db.Querier, email string) (*queries.AdminView, string, error) {
	row := q.QueryRow(ctx, `SELECT `+adminColumns+`, password_hash FROM admins WHERE email = $1`, email)

	var v queries.AdminView
	var hash string
	err := row.Scan(&v.ID, &v.Email, &v.DisplayName, &v.Role, &v.IsActive, &v.CreatedAt, &v.UpdatedAt, &hash)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find admin by email", err)
	}

	return &v, hash, nil
}

func (r *AdminRepository) List(ctx context.Context, q db.Querier) ([]*queries.AdminView, error) {
	rows, err := q.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list admins", err)
	}
	defer rows.Close()

	var views []*queries.AdminView
	for rows.Next() {
		view, err := scanAdminView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan admin", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read admins", err)
	}

	return views, nil
}

func scanAdminView(row rowScanner) (*queries.AdminView, error) {
	var v queries.AdminView
	err := row.Scan(&v.ID, &v.Email, &v.DisplayName, &v.Role, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
