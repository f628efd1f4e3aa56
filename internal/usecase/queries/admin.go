package queries

import (
	"context"

	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminNotFound = errs.New("admin not found")

type AdminReadStore interface {
	List(ctx context.Context, q db.Querier) ([]*AdminView, error)
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*AdminView, error)
}

type AdminQueries interface {
	List(ctx context.Context) ([]*AdminView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AdminView, error)
}

type adminQueriesImpl struct {
	admins AdminReadStore
	pool   *pgxpool.Pool
}

func NewAdminQueries(admins AdminReadStore, pool *pgxpool.Pool) AdminQueries {
	return &adminQueriesImpl{admins: admins, pool: pool}
}

func (s *adminQueriesImpl) List(ctx context.Context) ([]*AdminView, error) {
	views, err := s.admins.List(ctx, s.pool)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (s *adminQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AdminView, error) {
	view, err := s.admins.FindByID(ctx, s.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
