package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
	pginfra "github.com/oksasatya/go-user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// seed creates a verified demo user so login works without a mail round-trip.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", "demo@example.com", "demo user email")
	password := flag.String("password", "password123", "demo user password")
	flag.Parse()

	ctx := context.Background()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)

	existing, err := users.GetByEmail(ctx, *email)
	switch {
	case err == nil:
		if _, err := users.SetVerified(ctx, existing.ID); err != nil {
			log.Fatalf("failed to verify existing user: %v", err)
		}
		fmt.Printf("user already present: id=%s email=%s (marked verified)\n", existing.ID, existing.Email)
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.Fatalf("failed to look up user: %v", err)
	}

	hash, err := helpers.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	u := &entity.User{
		ID:         uuid.NewString(),
		FirstName:  "Demo",
		LastName:   "User",
		Email:      *email,
		Password:   hash,
		Country:    "ID",
		IsVerified: true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, *password)
}
