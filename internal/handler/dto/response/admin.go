package response

import (
	"time"

	"treebox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AdminResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromAdminView(v *queries.AdminView) *AdminResponse {
	var r AdminResponse
	_ = copier.Copy(&r, v)
	return &r
}

func FromAdminViews(views []*queries.AdminView) []*AdminResponse {
	admins := make([]*AdminResponse, len(views))
	for i, v := range views {
		admins[i] = FromAdminView(v)
	}
	return admins
}
