package queries

import (
	"context"

	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomReadStore interface {
	List(ctx context.Context, q db.Querier, includeInactive bool) ([]*RoomView, error)
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*RoomView, error)
}

type RoomQueries interface {
	List(ctx context.Context, includeInactive bool) ([]*RoomView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type roomQueriesImpl struct {
	rooms RoomReadStore
	pool  *pgxpool.Pool
}

func NewRoomQueries(rooms RoomReadStore, pool *pgxpool.Pool) RoomQueries {
	return &roomQueriesImpl{rooms: rooms, pool: pool}
}

func (s *roomQueriesImpl) List(ctx context.Context, includeInactive bool) ([]*RoomView, error) {
	views, err := s.rooms.List(ctx, s.pool, includeInactive)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (s *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := s.rooms.FindByID(ctx, s.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
