package response

import (
	"time"

	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	Icon      string    `json:"icon"`
	Accent    string    `json:"accent"`
	BadgeBg   string    `json:"badge_bg"`
	BadgeText string    `json:"badge_text"`
	RowBg     string    `json:"row_bg"`
	Border    string    `json:"border"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	var r RoomResponse
	_ = copier.Copy(&r, v)
	return &r
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	rooms := make([]*RoomResponse, len(views))
	for i, v := range views {
		rooms[i] = FromRoomView(v)
	}
	return rooms
}
