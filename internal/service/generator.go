package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/model"
)

const (
	DefaultLength = 16
	MaxLength     = 4096
	MaxCount      = 50
	// MaxHashedCount bounds argon2id work per request.
	MaxHashedCount = 5
)

var (
	ErrLengthTooLong       = fmt.Errorf("password length must be at most %d", MaxLength)
	ErrCountOutOfRange     = fmt.Errorf("count must be between 1 and %d", MaxCount)
	ErrHashCountOutOfRange = fmt.Errorf("hashing is limited to %d passwords per request", MaxHashedCount)
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator *crypto.Generator
	hasher    *crypto.Hasher
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(gen *crypto.Generator, hasher *crypto.Hasher) *GeneratorService {
	return &GeneratorService{generator: gen, hasher: hasher}
}

// Generate produces passwords based on the given request. A zero length or
// count selects the default.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	length := req.Length
	if length == 0 {
		length = DefaultLength
	}
	if length > MaxLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxCount {
		return model.GenerateResponse{}, ErrCountOutOfRange
	}
	if req.Hash && count > MaxHashedCount {
		return model.GenerateResponse{}, ErrHashCountOutOfRange
	}

	passwords, err := s.generator.GenerateN(length, count)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{Passwords: make([]model.GeneratedPassword, 0, len(passwords))}
	for _, pw := range passwords {
		item := model.GeneratedPassword{Password: pw, Length: len(pw)}
		if req.Hash {
			if item.Hash, err = s.hasher.Hash(pw); err != nil {
				return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
			}
		}
		resp.Passwords = append(resp.Passwords, item)
	}

	return resp, nil
}

// IsValidationError reports whether err was caused by bad request parameters.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrCountOutOfRange) ||
		errors.Is(err, ErrHashCountOutOfRange)
}
