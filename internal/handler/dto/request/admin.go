package request

import "treebox/internal/usecase/commands"

type CreateAdminRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
}

func (r CreateAdminRequest) ToParams() commands.CreateAdminParams {
	return commands.CreateAdminParams{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Password:    r.Password,
	}
}

// UpdateAdminRequest edits a crew profile. Email is fixed after
// creation; omitting is_active keeps the current state.
type UpdateAdminRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	IsActive    *bool  `json:"is_active"`
}

func (r UpdateAdminRequest) ToParams() commands.UpdateAdminParams {
	return commands.UpdateAdminParams{
		DisplayName: r.DisplayName,
		IsActive:    r.IsActive,
	}
}
