//go:build unit

package session_test

import (
	"testing"
	"time"

	"treebox/internal/domain/session"
	"treebox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.SessionBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewSessionBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestSession(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewSessionBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "RED RUBY", actual.Room())
		assert.Equal(t, "Budi Santoso", actual.CustomerName())
		assert.Equal(t, "Siti Rahma", actual.CashierName())
		assert.Equal(t, 2, actual.QtyHours())
		assert.Equal(t, 2*time.Hour, actual.Interval().Duration())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty room",
				mutate: func(b *builder.SessionBuilder) { b.Room = "" },
				errIs:  session.ErrEmptyRoom,
			},
			{
				name:   "whitespace room",
				mutate: func(b *builder.SessionBuilder) { b.Room = "   " },
				errIs:  session.ErrEmptyRoom,
			},
			{
				name:   "empty customer name",
				mutate: func(b *builder.SessionBuilder) { b.NamaPelanggan = "" },
				errIs:  session.ErrEmptyCustomerName,
			},
			{
				name:   "empty cashier name",
				mutate: func(b *builder.SessionBuilder) { b.NamaKasir = " " },
				errIs:  session.ErrEmptyCashierName,
			},
			{
				name:   "zero duration",
				mutate: func(b *builder.SessionBuilder) { b.QtyJam = 0 },
				errIs:  session.ErrInvalidQty,
			},
			{
				name:   "phone and note are optional",
				mutate: func(b *builder.SessionBuilder) { b.NoHp, b.Catatan = "", "" },
			},
		})
	})

	t.Run("names are trimmed", func(t *testing.T) {
		b := builder.NewSessionBuilder()
		b.NamaPelanggan = "  Budi  "
		b.NamaKasir = " Siti "

		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Budi", actual.CustomerName())
		assert.Equal(t, "Siti", actual.CashierName())
	})
}

func TestSessionConflictsWith(t *testing.T) {
	build := func(room, start, end string) *session.Session {
		b := builder.NewSessionBuilder()
		b.Room = room
		b.WaktuMulai = start
		b.WaktuSelesai = end
		s, err := b.BuildDomain()
		require.NoError(t, err)
		return s
	}

	base := build("RED RUBY", "19:00", "21:00")

	t.Run("same room overlapping times conflict", func(t *testing.T) {
		assert.True(t, base.ConflictsWith(build("RED RUBY", "20:00", "22:00")))
	})

	t.Run("different room never conflicts", func(t *testing.T) {
		assert.False(t, base.ConflictsWith(build("BLACK GOLD", "20:00", "22:00")))
	})

	t.Run("back to back sessions do not conflict", func(t *testing.T) {
		assert.False(t, base.ConflictsWith(build("RED RUBY", "21:00", "22:00")))
		assert.False(t, base.ConflictsWith(build("RED RUBY", "18:00", "19:00")))
	})

	t.Run("a session never conflicts with itself", func(t *testing.T) {
		assert.False(t, base.ConflictsWith(base))
	})
}
