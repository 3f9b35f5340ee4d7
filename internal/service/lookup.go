package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/vaultpass/toolbox/internal/model"
)

// Upstream is the set of remote lookups the service relies on.
// *client.Client satisfies it.
type Upstream interface {
	LookupCEP(ctx context.Context, cep string) (model.Address, error)
	LookupQuote(ctx context.Context, code string) (model.Quote, error)
	RandomProfile(ctx context.Context) (model.Profile, error)
}

// LookupService fronts the public APIs used by the CLI and HTTP API.
type LookupService struct {
	upstream Upstream
	fallback bool

	mu    sync.Mutex // guards faker
	faker *gofakeit.Faker
}

// NewLookupService creates a LookupService. With fallback set, a failed
// profile request is answered with an offline profile instead of an error.
func NewLookupService(upstream Upstream, fallback bool) *LookupService {
	return &LookupService{
		upstream: upstream,
		faker:    gofakeit.New(0),
		fallback: fallback,
	}
}

// Address resolves a postal code.
func (s *LookupService) Address(ctx context.Context, cep string) (model.Address, error) {
	return s.upstream.LookupCEP(ctx, cep)
}

// Quote returns the latest BRL quote for a currency code.
func (s *LookupService) Quote(ctx context.Context, code string) (model.Quote, error) {
	return s.upstream.LookupQuote(ctx, code)
}

// Profile returns a random user profile, from randomuser.me unless offline is set.
func (s *LookupService) Profile(ctx context.Context, offline bool) (model.Profile, error) {
	if offline {
		return s.offlineProfile(), nil
	}

	p, err := s.upstream.RandomProfile(ctx)
	if err != nil {
		if s.fallback && ctx.Err() == nil {
			slog.Warn("randomuser unavailable, using offline profile", "error", err)
			return s.offlineProfile(), nil
		}
		return model.Profile{}, err
	}
	return p, nil
}

func (s *LookupService) offlineProfile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.Profile{
		Name:    s.faker.FirstName() + " " + s.faker.LastName(),
		Email:   s.faker.Email(),
		Country: s.faker.Country(),
		Source:  model.ProfileSourceOffline,
	}
}
