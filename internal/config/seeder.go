package config

import (
	"context"
	"log"
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	admins repositories.AdminRepository
	cfg    AdminConfig
	cost   int
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins repositories.AdminRepository, cfg AdminConfig) *Seeder {
	return &Seeder{admins: admins, cfg: cfg, cost: password.DefaultCost}
}

// WithHashCost overrides the bcrypt cost used for the bootstrap password
func (s *Seeder) WithHashCost(cost int) *Seeder {
	s.cost = cost
	return s
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap admin if no admin exists. The insert is
// conditional on the unique username, so processes starting at the same
// time still end up with a single admin.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := strings.TrimSpace(s.cfg.Username)
	hash, err := password.HashWithCost(s.cfg.Password, s.cost)
	if err != nil {
		return err
	}

	created, err := s.admins.CreateIfAbsent(ctx, &models.Admin{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	if created {
		log.Printf("✅ Admin created: %s", username)
	}
	return nil
}
