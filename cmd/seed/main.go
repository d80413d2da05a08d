package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/relief-directory/config"
	"github.com/oksasatya/relief-directory/internal/domain/entity"
	repo "github.com/oksasatya/relief-directory/internal/domain/repository"
	pginfra "github.com/oksasatya/relief-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

type sample struct {
	typ      entity.ResourceType
	name     string
	address  string
	lat, lng float64
}

var samples = []sample{
	{entity.TypeShelter, "Town Hall Shelter", "12 Civic Centre Rd", 12.9716, 77.5946},
	{entity.TypeFood, "Community Kitchen", "4 Market St", 12.9352, 77.6245},
	{entity.TypeMedical, "Field Clinic", "St. John's Grounds", 12.9279, 77.6271},
	{entity.TypeSafe, "Stadium Assembly Point", "Kanteerava Stadium", 12.9698, 77.5931},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	resources := pginfra.NewResourceRepository(pool)

	email := entity.NormalizeEmail(getenv("SEED_MODERATOR_EMAIL", "moderator@relief.local"))
	password := getenv("SEED_MODERATOR_PASSWORD", "change-me-now")

	mod, err := users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		hash, hErr := helpers.HashPassword(password, cfg.BcryptCost)
		if hErr != nil {
			log.Fatalf("failed to hash password: %v", hErr)
		}
		mod = &entity.User{Email: email, Name: "Moderator", PasswordHash: hash}
		err = users.Create(ctx, mod)
	}
	if err != nil {
		log.Fatalf("failed to seed moderator: %v", err)
	}
	if err := users.AssignRole(ctx, mod.ID, entity.RoleModerator); err != nil {
		log.Fatalf("failed to assign moderator role: %v", err)
	}
	fmt.Printf("seeded moderator: id=%s email=%s\n", mod.ID, mod.Email)

	for _, s := range samples {
		pt, err := entity.NewPoint(s.lat, s.lng)
		if err != nil {
			log.Fatalf("bad sample %q: %v", s.name, err)
		}
		res := &entity.Resource{
			Type:        s.typ,
			Name:        s.name,
			Address:     s.address,
			Location:    pt,
			Status:      entity.StatusVerified,
			SubmittedBy: mod.ID,
		}
		if err := resources.Create(ctx, res); err != nil {
			log.Fatalf("failed to seed resource %q: %v", s.name, err)
		}
		fmt.Printf("seeded %s resource: id=%s name=%s\n", s.typ, res.ID, s.name)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
