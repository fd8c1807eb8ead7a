package seeder

import (
	"context"
	"fmt"
	"log"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, repos Repos) error {
	if repos.Users == nil || repos.Questions == nil {
		return fmt.Errorf("nil repositories")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, repos); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("Seeder | done name=%s", s.Name())
		}
	}
	return nil
}
