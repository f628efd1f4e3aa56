//go:build unit || e2e

package builder

import (
	"time"

	"treebox/internal/domain/room"
	reqdto "treebox/internal/handler/dto/request"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	Name      string
	ShortCode string
	Detail    room.Detail
	IsActive  bool
	CreatedAt time.Time
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Name:      "RED RUBY",
		ShortCode: "RR",
		Detail: room.Detail{
			Icon:      "gem",
			Accent:    "#d63b52",
			BadgeBg:   "rgba(214, 59, 82, 0.22)",
			BadgeText: "#7f1224",
			RowBg:     "rgba(214, 59, 82, 0.08)",
			Border:    "rgba(214, 59, 82, 0.28)",
		},
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) BuildDomain() (*room.Room, error) {
	return room.NewRoom(b.Name, b.ShortCode, b.Detail)
}

func (b *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:      b.Name,
		ShortCode: b.ShortCode,
		Detail: reqdto.RoomDetailPayload{
			Icon:      b.Detail.Icon,
			Accent:    b.Detail.Accent,
			BadgeBg:   b.Detail.BadgeBg,
			BadgeText: b.Detail.BadgeText,
			RowBg:     b.Detail.RowBg,
			Border:    b.Detail.Border,
		},
	}
}

func (b *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:        uuid.New(),
		Name:      b.Name,
		ShortCode: b.ShortCode,
		Icon:      b.Detail.Icon,
		Accent:    b.Detail.Accent,
		BadgeBg:   b.Detail.BadgeBg,
		BadgeText: b.Detail.BadgeText,
		RowBg:     b.Detail.RowBg,
		Border:    b.Detail.Border,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}
