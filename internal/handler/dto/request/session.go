package request

import (
	"time"

	"treebox/internal/usecase/commands"
)

// Session payloads keep the field names the dashboard has always sent.
type CreateSessionRequest struct {
	Room          string `json:"room" binding:"required"`
	NamaPelanggan string `json:"nama_pelanggan" binding:"required"`
	NamaKasir     string `json:"nama_kasir" binding:"required"`
	NoHp          string `json:"no_hp"`
	Catatan       string `json:"catatan"`
	Tanggal       string `json:"tanggal"`                        // YYYY-MM-DD, today when empty
	WaktuMulai    string `json:"waktu_mulai" binding:"required"` // "HH:MM"
	WaktuSelesai  string `json:"waktu_selesai"`
	QtyJam        int    `json:"qty_jam"`
}

func (r CreateSessionRequest) ToParams(now time.Time) commands.CreateSessionParams {
	return commands.CreateSessionParams{
		Room:          r.Room,
		NamaPelanggan: r.NamaPelanggan,
		NamaKasir:     r.NamaKasir,
		NoHp:          r.NoHp,
		Catatan:       r.Catatan,
		Tanggal:       parseTanggal(r.Tanggal, now),
		WaktuMulai:    r.WaktuMulai,
		WaktuSelesai:  r.WaktuSelesai,
		QtyJam:        r.QtyJam,
	}
}

// QuickAddSessionRequest backs the grid's one-click booking: room and
// start hour come from the clicked cell, duration defaults to one hour
// and the cashier name falls back to the signed-in operator.
type QuickAddSessionRequest struct {
	Room          string `json:"room" binding:"required"`
	NamaPelanggan string `json:"nama_pelanggan" binding:"required"`
	NamaKasir     string `json:"nama_kasir"`
	Tanggal       string `json:"tanggal"`
	WaktuMulai    string `json:"waktu_mulai" binding:"required"`
}

func (r QuickAddSessionRequest) ToParams(now time.Time, fallbackKasir string) commands.QuickAddParams {
	kasir := r.NamaKasir
	if kasir == "" {
		kasir = fallbackKasir
	}
	return commands.QuickAddParams{
		Room:          r.Room,
		NamaPelanggan: r.NamaPelanggan,
		NamaKasir:     kasir,
		Tanggal:       parseTanggal(r.Tanggal, now),
		WaktuMulai:    r.WaktuMulai,
	}
}

type UpdateSessionRequest struct {
	Room          string `json:"room" binding:"required"`
	NamaPelanggan string `json:"nama_pelanggan" binding:"required"`
	NamaKasir     string `json:"nama_kasir" binding:"required"`
	NoHp          string `json:"no_hp"`
	Catatan       string `json:"catatan"`
	WaktuMulai    string `json:"waktu_mulai" binding:"required"`
	QtyJam        int    `json:"qty_jam" binding:"required,min=1"`
}

func (r UpdateSessionRequest) ToParams() commands.UpdateSessionParams {
	return commands.UpdateSessionParams{
		Room:          r.Room,
		NamaPelanggan: r.NamaPelanggan,
		NamaKasir:     r.NamaKasir,
		NoHp:          r.NoHp,
		Catatan:       r.Catatan,
		WaktuMulai:    r.WaktuMulai,
		QtyJam:        r.QtyJam,
	}
}

func parseTanggal(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	t, err := time.ParseInLocation("2006-01-02", value, now.Location())
	if err != nil {
		return now
	}
	return t
}
