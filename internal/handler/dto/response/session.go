package response

import (
	"time"

	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SessionResponse struct {
	ID            uuid.UUID `json:"id"`
	Room          string    `json:"room"`
	NamaPelanggan string    `json:"nama_pelanggan"`
	NamaKasir     string    `json:"nama_kasir"`
	NoHp          *string   `json:"no_hp,omitempty"`
	Catatan       *string   `json:"catatan,omitempty"`
	WaktuMulai    time.Time `json:"waktu_mulai"`
	WaktuSelesai  time.Time `json:"waktu_selesai"`
	QtyJam        int32     `json:"qty_jam"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int                `json:"total"`
}

type RoomSummaryResponse struct {
	Room       string `json:"room"`
	Count      int    `json:"count"`
	TotalHours int    `json:"total_hours"`
}

type SummaryResponse struct {
	All   RoomSummaryResponse   `json:"all"`
	Rooms []RoomSummaryResponse `json:"rooms"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	var r SessionResponse
	_ = copier.Copy(&r, v)
	return &r
}

func FromSessionViews(views []*queries.SessionView) *SessionListResponse {
	sessions := make([]*SessionResponse, len(views))
	for i, v := range views {
		sessions[i] = FromSessionView(v)
	}
	return &SessionListResponse{Sessions: sessions, Total: len(sessions)}
}

func FromSummaryResult(r *queries.SummaryResult) *SummaryResponse {
	var resp SummaryResponse
	_ = copier.Copy(&resp, r)
	return &resp
}
