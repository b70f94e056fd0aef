package dto

import (
	"time"

	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserListResponse(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type ProfilePictureResponse struct {
	PictureURL string    `json:"pictureUrl"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewProfilePictureResponse maps an unset picture to nil.
func NewProfilePictureResponse(p *user.ProfilePicture) *ProfilePictureResponse {
	if p == nil {
		return nil
	}
	return &ProfilePictureResponse{PictureURL: p.PictureURL, UpdatedAt: p.UpdatedAt}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ProfilePicturePayload struct {
	User           UserResponse            `json:"user"`
	ProfilePicture *ProfilePictureResponse `json:"profilePicture"`
}

type DeletedResponse struct {
	ID uuid.UUID `json:"id"`
}
