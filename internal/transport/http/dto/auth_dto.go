package dto

import (
	"strings"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
}

func (r *RegisterRequest) Validate() []string {
	var errors []string

	if r.FirstName == "" {
		errors = append(errors, "first_name is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		errors = append(errors, "a valid email is required")
	}
	if len(r.Password) < 6 {
		errors = append(errors, "password must be at least 6 characters long")
	}
	if r.Role != "" && r.Role != "client" && r.Role != "worker" && r.Role != "admin" {
		errors = append(errors, "role must be one of: client, worker, admin")
	}

	return errors
}

func (r *RegisterRequest) ToInput() ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      domain.UserRole(r.Role),
		Phone:     r.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Phone     *string  `json:"phone"`
	Bio       *string  `json:"bio"`
	Skills    []string `json:"skills"`
	AvatarURL *string  `json:"avatar_url"`
}

func (r *UpdateProfileRequest) ToInput() ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Bio:       r.Bio,
		Skills:    r.Skills,
		AvatarURL: r.AvatarURL,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uint            `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Role           domain.UserRole `json:"role"`
	Phone          string          `json:"phone,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	Rating         float64         `json:"rating"`
	CompletedTasks int             `json:"completed_tasks"`
}

func UserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           user.Role,
		Phone:          user.Phone,
		Bio:            user.Bio,
		Skills:         user.Skills,
		AvatarURL:      user.AvatarURL,
		Rating:         user.Rating,
		CompletedTasks: user.CompletedTasks,
	}
}

// PublicProfileResponse hides contact details from unauthenticated viewers.
type PublicProfileResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Role           domain.UserRole `json:"role"`
	Bio            string          `json:"bio,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	Rating         float64         `json:"rating"`
	CompletedTasks int             `json:"completed_tasks"`
}

func UserToPublicProfile(user *domain.User) PublicProfileResponse {
	return PublicProfileResponse{
		ID:             user.ID,
		Name:           user.FullName(),
		Role:           user.Role,
		Bio:            user.Bio,
		Skills:         user.Skills,
		AvatarURL:      user.AvatarURL,
		Rating:         user.Rating,
		CompletedTasks: user.CompletedTasks,
	}
}
