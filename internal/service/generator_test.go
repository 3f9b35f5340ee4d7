package service

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/model"
)

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(
		crypto.NewGeneratorWithSource(rand.NewPCG(7, 7)),
		crypto.NewHasher(crypto.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
	)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	got := resp.Passwords[0]
	if got.Length != DefaultLength || len(got.Password) != DefaultLength {
		t.Errorf("expected length %d, got %d (%q)", DefaultLength, got.Length, got.Password)
	}
	if got.Hash != "" {
		t.Errorf("expected no hash unless requested, got %q", got.Hash)
	}
}

func TestGenerate_ShortLength(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{Length: 2, Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 3 {
		t.Fatalf("expected 3 passwords, got %d", len(resp.Passwords))
	}
	for _, p := range resp.Passwords {
		if len(p.Password) != 2 {
			t.Errorf("expected length 2, got %q", p.Password)
		}
	}
}

func TestGenerate_WithHash(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{Length: 24, Hash: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := resp.Passwords[0]
	if !strings.HasPrefix(got.Hash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", got.Hash)
	}
	ok, err := svc.hasher.Verify(got.Password, got.Hash)
	if err != nil || !ok {
		t.Errorf("hash does not verify against password: ok=%v err=%v", ok, err)
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  model.GenerateRequest
		want error
	}{
		{name: "negative length", req: model.GenerateRequest{Length: -1}, want: crypto.ErrInvalidLength},
		{name: "length too long", req: model.GenerateRequest{Length: MaxLength + 1}, want: ErrLengthTooLong},
		{name: "negative count", req: model.GenerateRequest{Count: -2}, want: ErrCountOutOfRange},
		{name: "count too large", req: model.GenerateRequest{Count: MaxCount + 1}, want: ErrCountOutOfRange},
		{name: "too many hashes", req: model.GenerateRequest{Count: MaxHashedCount + 1, Hash: true}, want: ErrHashCountOutOfRange},
	}

	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}

	if IsValidationError(errors.New("disk on fire")) {
		t.Error("IsValidationError should be false for unrelated errors")
	}
}

func TestGenerate_Limits(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.Generate(model.GenerateRequest{Length: MaxLength})
	if err != nil {
		t.Fatalf("unexpected error at MaxLength: %v", err)
	}
	if len(resp.Passwords[0].Password) != MaxLength {
		t.Errorf("expected length %d, got %d", MaxLength, len(resp.Passwords[0].Password))
	}

	resp, err = svc.Generate(model.GenerateRequest{Length: 8, Count: MaxHashedCount, Hash: true})
	if err != nil {
		t.Fatalf("unexpected error at MaxHashedCount: %v", err)
	}
	if len(resp.Passwords) != MaxHashedCount {
		t.Errorf("expected %d passwords, got %d", MaxHashedCount, len(resp.Passwords))
	}

	resp, err = svc.Generate(model.GenerateRequest{Length: 8, Count: MaxCount})
	if err != nil {
		t.Fatalf("unexpected error at MaxCount without hashing: %v", err)
	}
	if len(resp.Passwords) != MaxCount {
		t.Errorf("expected %d passwords, got %d", MaxCount, len(resp.Passwords))
	}
}
