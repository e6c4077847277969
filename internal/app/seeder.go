package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"listing_portal/internal/domain"
)

// Seeder loads fixture listings and a session into the reference backend's
// repository.
type Seeder struct {
	repo    domain.PropertyRepository
	workers int64
	log     zerolog.Logger
}

func NewSeeder(repo domain.PropertyRepository, workers int, opts ...Option) *Seeder {
	if workers < 1 {
		workers = 1
	}
	o := buildOptions("seed", opts)
	return &Seeder{repo: repo, workers: int64(workers), log: o.log}
}

// ReadFixture decodes a file in the list-response shape, {"properties": [...]}.
func ReadFixture(r io.Reader) ([]domain.PropertyRecord, error) {
	var env struct {
		Properties []domain.PropertyRecord `json:"properties"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	for i, p := range env.Properties {
		if p.ID == "" {
			return nil, fmt.Errorf("fixture: record %d: %w", i, domain.ErrEmptyID)
		}
	}
	return env.Properties, nil
}

// Seed upserts every record for owner, at most workers at a time, and
// registers token for owner when it is non-empty. It returns the number of
// records written; the first failure or a canceled ctx stops the rest and
// is returned.
func (s *Seeder) Seed(ctx context.Context, owner, token string, recs []domain.PropertyRecord) (int, error) {
	if token != "" {
		if err := s.repo.PutSession(ctx, token, owner); err != nil {
			return 0, fmt.Errorf("put session: %w", err)
		}
	}

	sem := semaphore.NewWeighted(s.workers)
	g, gctx := errgroup.WithContext(ctx)
	var ok atomic.Int64

	for _, p := range recs {
		p := p
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(gctx, 1); err != nil {
			// a worker failure wins over the cancellation it caused
			if werr := g.Wait(); werr != nil {
				return int(ok.Load()), werr
			}
			return int(ok.Load()), fmt.Errorf("seed interrupted: %w", err)
		}
		g.Go(func() error {
			defer sem.Release(1)
			if err := s.repo.UpsertProperty(gctx, owner, p); err != nil {
				s.log.Warn().Str("id", p.ID.String()).Err(err).Msg("seed failed")
				return fmt.Errorf("seed %s: %w", p.ID, err)
			}
			ok.Add(1)
			s.log.Debug().Str("id", p.ID.String()).Msg("seed ok")
			return nil
		})
	}
	err := g.Wait()
	return int(ok.Load()), err
}
