package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). Session fields keep the column names
// the venue's store has always used.
type SessionView struct {
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

type RoomView struct {
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

type AdminView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionFilter narrows the session list the way the dashboard does:
// by business date key (YYYY-MM-DD), by room name, and by a free-text
// search across customer, cashier, phone, note and room.
type SessionFilter struct {
	Date   string
	Room   string
	Search string
}

// RoomSummary aggregates one room's sessions for the dashboard cards.
type RoomSummary struct {
	Room       string `json:"room"`
	Count      int    `json:"count"`
	TotalHours int    `json:"total_hours"`
}
