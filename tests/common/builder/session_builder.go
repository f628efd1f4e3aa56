//go:build unit || e2e

package builder

import (
	"time"

	"treebox/internal/domain/schedule"
	"treebox/internal/domain/session"
	reqdto "treebox/internal/handler/dto/request"
	"treebox/internal/usecase/commands"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	Room          string
	NamaPelanggan string
	NamaKasir     string
	NoHp          string
	Catatan       string
	Tanggal       time.Time
	WaktuMulai    string
	WaktuSelesai  string
	QtyJam        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewSessionBuilder() *SessionBuilder {
	now := time.Now()
	return &SessionBuilder{
		Room:          "RED RUBY",
		NamaPelanggan: "Budi Santoso",
		NamaKasir:     "Siti Rahma",
		NoHp:          "081234567890",
		Catatan:       "langganan",
		Tanggal:       time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		WaktuMulai:    "19:00",
		WaktuSelesai:  "21:00",
		QtyJam:        2,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) interval() (schedule.Interval, error) {
	return schedule.NewInterval(
		schedule.Combine(b.Tanggal, b.WaktuMulai),
		schedule.Combine(b.Tanggal, b.WaktuSelesai),
	)
}

func (b *SessionBuilder) BuildDomain() (*session.Session, error) {
	iv, err := b.interval()
	if err != nil {
		return nil, err
	}
	return session.NewSession(b.Room, b.NamaPelanggan, b.NamaKasir, b.NoHp, b.Catatan, iv, b.QtyJam)
}

func (b *SessionBuilder) BuildCreateParams() commands.CreateSessionParams {
	return commands.CreateSessionParams{
		Room:          b.Room,
		NamaPelanggan: b.NamaPelanggan,
		NamaKasir:     b.NamaKasir,
		NoHp:          b.NoHp,
		Catatan:       b.Catatan,
		Tanggal:       b.Tanggal,
		WaktuMulai:    b.WaktuMulai,
		WaktuSelesai:  b.WaktuSelesai,
		QtyJam:        b.QtyJam,
	}
}

func (b *SessionBuilder) BuildCreateRequestDTO() reqdto.CreateSessionRequest {
	return reqdto.CreateSessionRequest{
		Room:          b.Room,
		NamaPelanggan: b.NamaPelanggan,
		NamaKasir:     b.NamaKasir,
		NoHp:          b.NoHp,
		Catatan:       b.Catatan,
		Tanggal:       b.Tanggal.Format("2006-01-02"),
		WaktuMulai:    b.WaktuMulai,
		WaktuSelesai:  b.WaktuSelesai,
		QtyJam:        b.QtyJam,
	}
}

func (b *SessionBuilder) BuildUpdateRequestDTO() reqdto.UpdateSessionRequest {
	return reqdto.UpdateSessionRequest{
		Room:          b.Room,
		NamaPelanggan: b.NamaPelanggan,
		NamaKasir:     b.NamaKasir,
		NoHp:          b.NoHp,
		Catatan:       b.Catatan,
		WaktuMulai:    b.WaktuMulai,
		QtyJam:        b.QtyJam,
	}
}

func (b *SessionBuilder) BuildView() *queries.SessionView {
	noHp := b.NoHp
	catatan := b.Catatan
	view := &queries.SessionView{
		ID:            uuid.New(),
		Room:          b.Room,
		NamaPelanggan: b.NamaPelanggan,
		NamaKasir:     b.NamaKasir,
		WaktuMulai:    schedule.Combine(b.Tanggal, b.WaktuMulai),
		WaktuSelesai:  schedule.Combine(b.Tanggal, b.WaktuSelesai),
		QtyJam:        int32(b.QtyJam),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if noHp != "" {
		view.NoHp = &noHp
	}
	if catatan != "" {
		view.Catatan = &catatan
	}
	return view
}
