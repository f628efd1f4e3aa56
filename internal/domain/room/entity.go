package room

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName  = errors.New("room name cannot be empty")
	ErrEmptyShortCode = errors.New("room short code cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 100 characters)")
)

const MaxRoomNameLength = 100

// Room is a bookable physical unit identified by name. Deactivation is
// a soft delete; sessions keep referencing the name they were booked
// under.
type Room struct {
	id        uuid.UUID
	name      string
	shortCode string
	detail    Detail
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(name, shortCode string, detail Detail) (*Room, error) {
	name = strings.TrimSpace(name)
	shortCode = strings.ToUpper(strings.TrimSpace(shortCode))

	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}
	if shortCode == "" {
		return nil, ErrEmptyShortCode
	}

	return &Room{
		id:        uuid.New(),
		name:      name,
		shortCode: shortCode,
		detail:    detail.WithDefaults(),
		isActive:  true,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name, shortCode string,
	detail Detail,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		name:      name,
		shortCode: shortCode,
		detail:    detail,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) ShortCode() string    { return r.shortCode }
func (r *Room) Detail() Detail       { return r.detail }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
