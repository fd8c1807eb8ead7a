// Package seeder fills an empty database with demo accounts and questions
// for local development.
package seeder

import (
	"context"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
)

type Repos struct {
	Users     user.Repository
	Questions question.Repository
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, repos Repos) error
}
