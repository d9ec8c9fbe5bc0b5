package dto

import (
	"time"

	"github.com/templui/habitkit/internal/model"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=12,max=72"`
	Name     string `json:"name" validate:"max=100"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Timezone *string `json:"timezone" validate:"omitempty,timezone"`
}

type ProfileResponse struct {
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

type AvatarResponse struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// NewUserResponse maps a user and its optional profile.
func NewUserResponse(user *model.User, profile *model.Profile) (*UserResponse, error) {
	out := &UserResponse{}
	err := copyInto(out, user)
	if err != nil {
		return nil, err
	}

	if profile != nil {
		out.Profile = &ProfileResponse{}
		err = copyInto(out.Profile, profile)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func NewProfileResponse(profile *model.Profile) (*ProfileResponse, error) {
	out := &ProfileResponse{}
	err := copyInto(out, profile)
	return out, err
}
