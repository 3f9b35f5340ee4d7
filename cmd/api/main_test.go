package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaultpass/toolbox/internal/config"
)

func TestServeStopsOnCancel(t *testing.T) {
	cfg := config.Config{
		Port:           "0",
		Env:            "test",
		JWTSecret:      "secret",
		HTTPTimeout:    time.Second,
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve() returned %v, want nil after cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve() did not return after context cancellation")
	}
}

func TestServeRefusesEphemeralSecretInProduction(t *testing.T) {
	cfg := config.Config{
		Port:            "0",
		Env:             "production",
		JWTSecret:       "generated",
		EphemeralSecret: true,
		HTTPTimeout:     time.Second,
		RateLimitRPS:    1,
		RateLimitBurst:  1,
	}

	if err := serve(context.Background(), cfg); !errors.Is(err, config.ErrSecretRequired) {
		t.Fatalf("serve() error = %v, want ErrSecretRequired", err)
	}
}
