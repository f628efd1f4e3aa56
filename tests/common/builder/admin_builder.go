//go:build unit || e2e

package builder

import (
	"time"

	"treebox/internal/domain/admin"
	reqdto "treebox/internal/handler/dto/request"
	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type AdminBuilder struct {
	Email       string
	DisplayName string
	Password    string
	Role        admin.Role
	IsActive    bool
	CreatedAt   time.Time
}

func NewAdminBuilder() *AdminBuilder {
	return &AdminBuilder{
		Email:       "kasir@treebox.id",
		DisplayName: "Siti Rahma",
		Password:    "rahasia-sekali",
		Role:        admin.RoleCrew,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func (b *AdminBuilder) With(mutate func(*AdminBuilder)) *AdminBuilder {
	mutate(b)
	return b
}

func (b *AdminBuilder) BuildDomain() (*admin.Admin, error) {
	return admin.NewCrew(b.Email, b.DisplayName)
}

func (b *AdminBuilder) BuildCreateRequestDTO() reqdto.CreateAdminRequest {
	return reqdto.CreateAdminRequest{
		Email:       b.Email,
		DisplayName: b.DisplayName,
		Password:    b.Password,
	}
}

func (b *AdminBuilder) BuildView() *queries.AdminView {
	return &queries.AdminView{
		ID:          uuid.New(),
		Email:       b.Email,
		DisplayName: b.DisplayName,
		Role:        b.Role.String(),
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}
