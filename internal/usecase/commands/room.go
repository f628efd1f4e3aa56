package commands

import (
	"context"

	"treebox/internal/domain/room"
	"treebox/internal/infra"
	"treebox/internal/infra/db"
	"treebox/internal/pkg/errs"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrRoomNotFound  = errs.New("room not found")
	ErrDuplicateRoom = errs.New("room name already registered")
)

type RoomDetailParams struct {
	Icon      string
	Accent    string
	BadgeBg   string
	BadgeText string
	RowBg     string
	Border    string
}

type CreateRoomParams struct {
	Name      string
	ShortCode string
	Detail    RoomDetailParams
}

type UpdateRoomParams struct {
	Name      string
	ShortCode string
	Detail    RoomDetailParams
}

type RoomWriter interface {
	Create(ctx context.Context, q db.Querier, rm *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, q db.Querier, rm *room.Room) error
	SetActive(ctx context.Context, q db.Querier, id uuid.UUID, active bool) error
	FindByID(ctx context.Context, q db.Querier, id uuid.UUID) (*queries.RoomView, error)
}

type RoomCommands interface {
	Create(ctx context.Context, p CreateRoomParams) (*queries.RoomView, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateRoomParams) (*queries.RoomView, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*queries.RoomView, error)
}

type roomCommandsImpl struct {
	rooms RoomWriter
	pool  *pgxpool.Pool
}

func NewRoomCommands(rooms RoomWriter, pool *pgxpool.Pool) RoomCommands {
	return &roomCommandsImpl{rooms: rooms, pool: pool}
}

func (c *roomCommandsImpl) Create(ctx context.Context, p CreateRoomParams) (*queries.RoomView, error) {
	entity, err := room.NewRoom(p.Name, p.ShortCode, detailOf(p.Detail))
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := c.rooms.Create(ctx, c.pool, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateRoom
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.findView(ctx, id)
}

func (c *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, p UpdateRoomParams) (*queries.RoomView, error) {
	existing, err := c.rooms.FindByID(ctx, c.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if _, err := room.NewRoom(p.Name, p.ShortCode, detailOf(p.Detail)); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	entity := room.ReconstructRoom(
		id, p.Name, p.ShortCode, detailOf(p.Detail).WithDefaults(),
		existing.IsActive, existing.CreatedAt, existing.UpdatedAt,
	)

	if err := c.rooms.Update(ctx, c.pool, entity); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrRoomNotFound
		case infra.IsKind(err, infra.KindDuplicateKey):
			return nil, ErrDuplicateRoom
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return c.findView(ctx, id)
}

func (c *roomCommandsImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*queries.RoomView, error) {
	if err := c.rooms.SetActive(ctx, c.pool, id, active); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c.findView(ctx, id)
}

func (c *roomCommandsImpl) findView(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	view, err := c.rooms.FindByID(ctx, c.pool, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func detailOf(p RoomDetailParams) room.Detail {
	return room.Detail{
		Icon:      p.Icon,
		Accent:    p.Accent,
		BadgeBg:   p.BadgeBg,
		BadgeText: p.BadgeText,
		RowBg:     p.RowBg,
		Border:    p.Border,
	}
}
