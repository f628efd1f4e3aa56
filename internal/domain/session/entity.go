package session

import (
	"strings"
	"time"

	"treebox/internal/domain/schedule"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
	ErrEmptyCashierName  = errors.New("cashier name cannot be empty")
	ErrEmptyRoom         = errors.New("room cannot be empty")
	ErrInvalidQty        = errors.New("duration must be a positive number of hours")
)

// Session is one booked interval of room usage. The room is referenced
// by name and the cashier name is a point-in-time copy of the operator's
// display name, not a live foreign key.
type Session struct {
	id           uuid.UUID
	room         string
	customerName string
	cashierName  string
	phone        string
	note         string
	interval     schedule.Interval
	qtyHours     int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSession(
	room, customerName, cashierName, phone, note string,
	interval schedule.Interval,
	qtyHours int,
) (*Session, error) {
	room = strings.TrimSpace(room)
	customerName = strings.TrimSpace(customerName)
	cashierName = strings.TrimSpace(cashierName)

	if room == "" {
		return nil, ErrEmptyRoom
	}
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	if cashierName == "" {
		return nil, ErrEmptyCashierName
	}
	if qtyHours <= 0 {
		return nil, ErrInvalidQty
	}

	return &Session{
		id:           uuid.New(),
		room:         room,
		customerName: customerName,
		cashierName:  cashierName,
		phone:        strings.TrimSpace(phone),
		note:         strings.TrimSpace(note),
		interval:     interval,
		qtyHours:     qtyHours,
	}, nil
}

func ReconstructSession(
	id uuid.UUID,
	room, customerName, cashierName, phone, note string,
	interval schedule.Interval,
	qtyHours int,
	createdAt, updatedAt time.Time,
) *Session {
	return &Session{
		id:           id,
		room:         room,
		customerName: customerName,
		cashierName:  cashierName,
		phone:        phone,
		note:         note,
		interval:     interval,
		qtyHours:     qtyHours,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ConflictsWith reports whether two sessions compete for the same room
// at overlapping times. A session never conflicts with itself.
func (s *Session) ConflictsWith(other *Session) bool {
	if s.id == other.id {
		return false
	}
	return s.room == other.room && s.interval.Overlaps(other.interval)
}

func (s *Session) ID() uuid.UUID               { return s.id }
func (s *Session) Room() string                { return s.room }
func (s *Session) CustomerName() string        { return s.customerName }
func (s *Session) CashierName() string         { return s.cashierName }
func (s *Session) Phone() string               { return s.phone }
func (s *Session) Note() string                { return s.note }
func (s *Session) Interval() schedule.Interval { return s.interval }
func (s *Session) QtyHours() int               { return s.qtyHours }
func (s *Session) CreatedAt() time.Time        { return s.createdAt }
func (s *Session) UpdatedAt() time.Time        { return s.updatedAt }
