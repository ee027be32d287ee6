// Package memory keeps users and email codes in process memory.
// It backs STORE_DRIVER=memory and the service tests; data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]entity.User{}, now: time.Now}
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) update(id string, fn func(u *entity.User)) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = r.now()
	r.users[id] = u
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error) {
	return r.update(id, p.Apply)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (*entity.User, error) {
	return r.update(id, func(u *entity.User) { u.Password = passwordHash })
}

func (r *UserRepository) SetVerified(ctx context.Context, id string) (*entity.User, error) {
	return r.update(id, func(u *entity.User) { u.IsVerified = true })
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type EmailCodeRepository struct {
	mu     sync.RWMutex
	byCode map[string]entity.EmailCode
	users  *UserRepository
}

// NewEmailCodeRepository returns a code store. When users is non-nil, codes
// whose owner no longer exists are treated as gone, like the cascading FK in postgres.
func NewEmailCodeRepository(users *UserRepository) *EmailCodeRepository {
	return &EmailCodeRepository{byCode: map[string]entity.EmailCode{}, users: users}
}

func (r *EmailCodeRepository) Create(ctx context.Context, c *entity.EmailCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byCode[c.Code]; dup {
		return repository.ErrDuplicateCode
	}
	c.CreatedAt = time.Now()
	r.byCode[c.Code] = *c
	return nil
}

func (r *EmailCodeRepository) GetByCode(ctx context.Context, code string) (*entity.EmailCode, error) {
	r.mu.RLock()
	c, ok := r.byCode[code]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.users != nil {
		if _, err := r.users.GetByID(ctx, c.UserID); err != nil {
			return nil, repository.ErrNotFound
		}
	}
	return &c, nil
}

func (r *EmailCodeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, c := range r.byCode {
		if c.ID == id {
			delete(r.byCode, code)
		}
	}
	return nil
}
