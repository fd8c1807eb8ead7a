package seeder

import (
	"context"
	"time"

	"thinkabout/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPassword     = "password123"
	DemoFreeEmail    = "demo-free@thinkabout.local"
	DemoPremiumEmail = "demo-premium@thinkabout.local"
)

type demoUser struct {
	Name        string
	Email       string
	Gender      string
	DateOfBirth time.Time
	Package     user.Package
}

var demoUsers = []demoUser{
	{Name: "Demo Free", Email: DemoFreeEmail, Gender: "female", DateOfBirth: time.Date(1994, 3, 14, 0, 0, 0, 0, time.UTC), Package: user.PackageFree},
	{Name: "Demo Premium", Email: DemoPremiumEmail, Gender: "male", DateOfBirth: time.Date(1988, 11, 2, 0, 0, 0, 0, time.UTC), Package: user.PackagePremium},
}

// UsersSeeder creates the demo accounts, skipping any whose email exists.
type UsersSeeder struct {
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, repos Repos) error {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	for _, it := range demoUsers {
		exists, err := repos.Users.ExistsByEmail(ctx, it.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
		if err != nil {
			return err
		}
		created, err := repos.Users.Create(ctx, user.User{
			Name:         it.Name,
			Email:        it.Email,
			PasswordHash: string(hash),
			Gender:       it.Gender,
			DateOfBirth:  it.DateOfBirth,
		})
		if err != nil {
			return err
		}
		if it.Package != user.PackageFree {
			if err := repos.Users.UpdatePackage(ctx, created.ID, it.Package); err != nil {
				return err
			}
		}
	}
	return nil
}
