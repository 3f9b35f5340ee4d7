package crypto

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	// ASCII punctuation without ' " and \.
	punctuationChars = "!#$%&()*+,-./:;<=>?@[]^_`{|}~"

	fullPool = lowercaseChars + uppercaseChars + digitChars + punctuationChars

	// MinDiverseLength is the shortest length that gets one symbol of every class.
	MinDiverseLength = 4
)

var ErrInvalidLength = errors.New("password length must be at least 1")

// InvalidLengthError reports a requested length below 1.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid password length %d: must be at least 1", e.Length)
}

func (e *InvalidLengthError) Unwrap() error { return ErrInvalidLength }

// CharacterClass is a named, disjoint group of symbols.
type CharacterClass struct {
	Name    string
	Symbols string
}

var classes = []CharacterClass{
	{Name: "lowercase", Symbols: lowercaseChars},
	{Name: "uppercase", Symbols: uppercaseChars},
	{Name: "digit", Symbols: digitChars},
	{Name: "punctuation", Symbols: punctuationChars},
}

// Classes returns the four character classes in guarantee order.
func Classes() []CharacterClass {
	out := make([]CharacterClass, len(classes))
	copy(out, classes)
	return out
}

// FullPool returns the union of all character classes.
func FullPool() string {
	return fullPool
}

// Generator produces passwords from a randomness source.
// The zero value is not usable; use NewGenerator or NewGeneratorWithSource.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator backed by crypto/rand. It is safe for
// concurrent use.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(cryptoSource{})}
}

// NewGeneratorWithSource returns a Generator drawing from src. The result is
// only safe for concurrent use if src is.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

var defaultGenerator = NewGenerator()

// Generate creates a password of the given length with the default generator.
func Generate(length int) (string, error) {
	return defaultGenerator.Generate(length)
}

// Generate creates a random password of exactly length symbols. For lengths
// of MinDiverseLength or more the result holds at least one lowercase letter,
// uppercase letter, digit and punctuation symbol. Shorter passwords are drawn
// from the full pool with no such guarantee.
func (g *Generator) Generate(length int) (string, error) {
	if length < 1 {
		return "", &InvalidLengthError{Length: length}
	}

	result := make([]byte, 0, length)

	// Guarantee at least one character from each class.
	if length >= MinDiverseLength {
		for _, class := range classes {
			result = append(result, g.pick(class.Symbols))
		}
	}

	// Fill the remaining positions from the full pool.
	for len(result) < length {
		result = append(result, g.pick(fullPool))
	}

	// Fisher-Yates, so the guaranteed symbols are not stuck at the front.
	g.rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	return string(result), nil
}

// GenerateN creates count passwords of the given length. A count below 1
// is treated as 1.
func (g *Generator) GenerateN(length, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(length)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

func (g *Generator) pick(charset string) byte {
	return charset[g.rng.IntN(len(charset))]
}

// ClassOf returns the name of the class holding c, or "" if c is outside the pool.
func ClassOf(c byte) string {
	for _, class := range classes {
		if strings.IndexByte(class.Symbols, c) >= 0 {
			return class.Name
		}
	}
	return ""
}

// cryptoSource is a rand.Source reading from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
