package admin

import (
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
	ErrSuperImmutable   = errors.New("super admin cannot be modified")
	ErrSuperUndeletable = errors.New("super admin cannot be removed")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Admin is a staff account. New accounts are always crew; the super role
// only exists from seeding and is immutable and undeletable through the
// management operations.
type Admin struct {
	id          uuid.UUID
	email       string
	displayName string
	role        Role
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCrew(email, displayName string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}

	return &Admin{
		id:          uuid.New(),
		email:       email,
		displayName: displayName,
		role:        RoleCrew,
		isActive:    true,
	}, nil
}

func ReconstructAdmin(
	id uuid.UUID,
	email, displayName string,
	role Role,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Admin {
	return &Admin{
		id:          id,
		email:       email,
		displayName: displayName,
		role:        role,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Admin) IsSuper() bool {
	return a.role == RoleSuper
}

// EnsureMutable guards the management operations: the super account can
// never be demoted, deactivated or renamed through them.
func (a *Admin) EnsureMutable() error {
	if a.IsSuper() {
		return ErrSuperImmutable
	}
	return nil
}

func (a *Admin) EnsureDeletable() error {
	if a.IsSuper() {
		return ErrSuperUndeletable
	}
	return nil
}

func (a *Admin) ID() uuid.UUID        { return a.id }
func (a *Admin) Email() string        { return a.email }
func (a *Admin) DisplayName() string  { return a.displayName }
func (a *Admin) Role() Role           { return a.role }
func (a *Admin) IsActive() bool       { return a.isActive }
func (a *Admin) CreatedAt() time.Time { return a.createdAt }
func (a *Admin) UpdatedAt() time.Time { return a.updatedAt }
