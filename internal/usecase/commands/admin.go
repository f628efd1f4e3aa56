package commands

import (
	"context"

	"treebox/internal/domain/admin"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/errs"
	"treebox/internal/pkg/password"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAdminNotFound    = errs.New("admin not found")
	ErrDuplicateEmail   = errs.New("email already registered")
	ErrAdminImmutable   = errs.New("this admin account cannot be modified")
	ErrAdminUndeletable = errs.New("this admin account cannot be removed")
)

type CreateAdminParams struct {
	Email       string
	DisplayName string
	Password    string
}

// UpdateAdminParams covers the editable staff fields. Email is the login
// identity and stays fixed after creation; nil IsActive keeps the current
// state.
type UpdateAdminParams struct {
	DisplayName string
	IsActive    *bool
}

type AdminWriter interface {
	Create(ctx context.Context, q db.Querier, a *admin.Admin, passwordHash string) (uuid.UUID, error)
	UpdateProfile(ctx context.Context, q db.Querier, a *admin.Admin) error
	Delete(ctx context.Context, q db.Querier, id uuid.UUID) error
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.AdminView, error)
}

type AdminCommands interface {
	Create(ctx context.Context, p CreateAdminParams) (*queries.AdminView, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateAdminParams) (*queries.AdminView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminCommandsImpl struct {
	admins AdminWriter
	pool   *pgxpool.Pool
}

func NewAdminCommands(admins AdminWriter, pool *pgxpool.Pool) AdminCommands {
	return &adminCommandsImpl{admins: admins, pool: pool}
}

func (c *adminCommandsImpl) Create(ctx context.Context, p CreateAdminParams) (*queries.AdminView, error) {
	// Accounts created through the API are always crew. The super role
	// exists only from seeding.
	entity, err := admin.NewCrew(p.Email, p.DisplayName)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(p.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := c.admins.Create(ctx, c.pool, entity, hash)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.admins.FindByID(ctx, c.pool, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *adminCommandsImpl) Update(ctx context.Context, id uuid.UUID, p UpdateAdminParams) (*queries.AdminView, error) {
	existing, err := c.loadAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := existing.EnsureMutable(); err != nil {
		return nil, ErrAdminImmutable
	}

	probe, err := admin.NewCrew(existing.Email(), p.DisplayName)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	isActive := existing.IsActive()
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	entity := admin.ReconstructAdmin(
		id, probe.Email(), probe.DisplayName(), admin.RoleCrew,
		isActive, existing.CreatedAt(), existing.UpdatedAt(),
	)

	if err := c.admins.UpdateProfile(ctx, c.pool, entity); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrAdminNotFound
		case infra.IsKind(err, infra.KindDuplicateKey):
			return nil, ErrDuplicateEmail
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	view, err := c.admins.FindByID(ctx, c.pool, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *adminCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := c.loadAdmin(ctx, id)
	if err != nil {
		return err
	}
	if err := existing.EnsureDeletable(); err != nil {
		return ErrAdminUndeletable
	}

	if err := c.admins.Delete(ctx, c.pool, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrAdminNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *adminCommandsImpl) loadAdmin(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	view, err := c.admins.FindByID(ctx, c.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	role, err := admin.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return admin.ReconstructAdmin(
		view.ID, view.Email, view.DisplayName, role,
		view.IsActive, view.CreatedAt, view.UpdatedAt,
	), nil
}
