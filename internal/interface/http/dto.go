package handlers

import (
	"time"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

type registerRequest struct {
	FirstName    string `json:"firstName" binding:"required,personname"`
	LastName     string `json:"lastName" binding:"required,personname"`
	Email        string `json:"email" binding:"required,email,max=254"`
	Password     string `json:"password" binding:"required,pwd"`
	Country      string `json:"country" binding:"required,max=100"`
	Image        string `json:"image" binding:"omitempty,max=2048"`
	FrontBaseURL string `json:"frontBaseUrl" binding:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email        string `json:"email" binding:"required"`
	FrontBaseURL string `json:"frontBaseUrl" binding:"omitempty,url"`
}

// codeURI is the :code path segment of verify and reset links.
type codeURI struct {
	Code string `uri:"code" binding:"required,hexcode"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

// updateRequest patches profile fields. Email and password are not accepted.
type updateRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,personname"`
	LastName     *string `json:"lastName" binding:"omitempty,personname"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
	Image        *string `json:"image" binding:"omitempty,max=2048"`
	FrontBaseURL string  `json:"frontBaseUrl"`
}

func (r updateRequest) toUpdate() entity.ProfileUpdate {
	return entity.ProfileUpdate{FirstName: r.FirstName, LastName: r.LastName, Country: r.Country, Image: r.Image}
}

// userResponse is the public shape of a user. The password hash is never rendered.
type userResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Country    string    `json:"country"`
	Image      string    `json:"image"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Country:    u.Country,
		Image:      u.Image,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toUserResponses(us []*entity.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResponse(u))
	}
	return out
}

type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}
