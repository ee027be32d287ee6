package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	repo "github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// Mailer delivers one HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// UserIndexer mirrors user profiles into a search index.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
	DeleteUser(ctx context.Context, id string) error
	SearchUsers(ctx context.Context, q string, size int) ([]*entity.User, error)
}

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Service implements the account use cases. Index and Storage are optional.
type Service struct {
	Users        repo.UserRepository
	Codes        repo.EmailCodeRepository
	Mailer       Mailer
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	HashCost     int
	AppName      string
	FrontBaseURL string
	Index        UserIndexer
	Storage      ObjectStorage

	hash      func(plain string, cost int) (string, error)
	dummyOnce sync.Once
	dummyHash string
}

func NewService(users repo.UserRepository, codes repo.EmailCodeRepository, mail Mailer, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		Users:    users,
		Codes:    codes,
		Mailer:   mail,
		JWT:      jwt,
		Logger:   logger,
		HashCost: 10,
		hash:     helpers.HashPassword,
	}
}

func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile patches the mutable profile fields. Email and password are never touched here.
func (s *Service) UpdateProfile(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error) {
	u, err := s.Users.UpdateProfile(ctx, id, p)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.indexUser(ctx, u)
	return u, nil
}

// Delete removes the user. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.DeleteUser(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
	}
	return nil
}

// UploadImage stores an avatar under avatars/<userID>/ and saves its URL on the profile.
func (s *Service) UploadImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return s.UpdateProfile(ctx, userID, entity.ProfileUpdate{Image: &url})
}

// Search queries the user index. Without an index it returns no hits.
func (s *Service) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []*entity.User{}, nil
	}
	users, err := s.Index.SearchUsers(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil || u == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}
