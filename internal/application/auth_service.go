package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	repo "github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/mailer/templates"
)

const (
	verifyEmailRoute   = "auth/verify_email"
	resetPasswordRoute = "auth/reset_password"
)

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Country      string
	Image        string
	FrontBaseURL string
}

type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an unverified user and mails a verification link.
// A mail failure after the user is stored is returned as-is; nothing is rolled back.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Country:   in.Country,
		Image:     in.Image,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	stats.Add(statRegistrations, 1)
	s.indexUser(ctx, u)

	code, err := s.issueCode(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	link := templates.BuildLink(s.frontBase(in.FrontBaseURL), verifyEmailRoute, code)
	data := templates.NewVerifyEmailData(u.FirstName, u.LastName, u.Email, link, templates.WithAppName(s.AppName))
	if err := s.sendTemplate(ctx, u.Email, templates.VerifyEmail, data); err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyEmail consumes code and marks its owner verified.
func (s *Service) VerifyEmail(ctx context.Context, code string) (*entity.User, error) {
	ec, err := s.lookupCode(ctx, code)
	if err != nil {
		return nil, err
	}

	u, err := s.Users.SetVerified(ctx, ec.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("verify user: %w", err)
	}
	if err := s.Codes.Delete(ctx, ec.ID); err != nil {
		return nil, fmt.Errorf("delete email code: %w", err)
	}
	stats.Add(statVerifications, 1)
	s.indexUser(ctx, u)
	return u, nil
}

// Login checks credentials and issues a session token for verified users.
// Unknown email and wrong password yield the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		// spend a comparable bcrypt round so unknown emails do not answer faster
		helpers.CompareHashAndPassword(s.dummy(), password)
		stats.Add(statLoginFailures, 1)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		stats.Add(statLoginFailures, 1)
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrUserNotVerified
	}

	token, exp, err := s.JWT.Sign(SessionUserOf(u))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		return nil, fmt.Errorf("sign token: %w", err)
	}
	stats.Add(statLogins, 1)
	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// RequestPasswordReset mails a reset link to the owner of email.
// Earlier outstanding codes stay valid.
func (s *Service) RequestPasswordReset(ctx context.Context, email, frontBaseURL string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	code, err := s.issueCode(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	stats.Add(statResetRequests, 1)
	link := templates.BuildLink(s.frontBase(frontBaseURL), resetPasswordRoute, code)
	data := templates.NewResetPasswordData(u.FirstName, u.LastName, u.Email, link, templates.WithAppName(s.AppName))
	if err := s.sendTemplate(ctx, u.Email, templates.ResetPassword, data); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword replaces the password of the code owner and consumes the code.
func (s *Service) ResetPassword(ctx context.Context, code, password string) (*entity.User, error) {
	ec, err := s.lookupCode(ctx, code)
	if err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.UpdatePassword(ctx, ec.UserID, hash)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	if err := s.Codes.Delete(ctx, ec.ID); err != nil {
		return nil, fmt.Errorf("delete email code: %w", err)
	}
	stats.Add(statResets, 1)
	s.indexUser(ctx, u)
	return u, nil
}

// SessionUserOf projects u onto the token payload.
func SessionUserOf(u *entity.User) helpers.SessionUser {
	return helpers.SessionUser{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Country:    u.Country,
		Image:      u.Image,
		IsVerified: u.IsVerified,
	}
}

func (s *Service) lookupCode(ctx context.Context, code string) (*entity.EmailCode, error) {
	ec, err := s.Codes.GetByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("find email code: %w", err)
	}
	return ec, nil
}

func (s *Service) issueCode(ctx context.Context, userID string) (string, error) {
	code, err := helpers.GenEmailCode()
	if err != nil {
		return "", fmt.Errorf("generate email code: %w", err)
	}
	ec := &entity.EmailCode{ID: uuid.NewString(), Code: code, UserID: userID}
	if err := s.Codes.Create(ctx, ec); err != nil {
		return "", fmt.Errorf("store email code: %w", err)
	}
	return code, nil
}

func (s *Service) sendTemplate(ctx context.Context, to, name string, data templates.EmailData) error {
	subject, html, err := templates.Render(name, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := s.Mailer.Send(ctx, to, subject, html); err != nil {
		stats.Add(statMailFailures, 1)
		s.Logger.WithError(err).WithField("to", to).WithField("template", name).Error("send mail failed")
		return fmt.Errorf("send mail: %w", err)
	}
	stats.Add(statMailsSent, 1)
	return nil
}

func (s *Service) hashPassword(plain string) (string, error) {
	hash, err := s.hashWith()(plain, s.HashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *Service) frontBase(fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	return s.FrontBaseURL
}

// fallbackDummyHash is a well-formed cost-10 hash that matches no issued password.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (s *Service) hashWith() func(string, int) (string, error) {
	if s.hash != nil {
		return s.hash
	}
	return helpers.HashPassword
}

// dummy returns the hash compared against when the email is unknown.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hashWith()(uuid.NewString(), s.HashCost)
		if err != nil {
			s.Logger.WithError(err).Warn("dummy password hash failed, using fallback")
			h = fallbackDummyHash
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
