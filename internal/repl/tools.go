package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaultpass/toolbox/internal/client"
	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/service"
)

// PasswordShell asks for a length and prints one password per answer.
func PasswordShell(gen *crypto.Generator) *Shell {
	return &Shell{
		Banner:  "--- Random Password Generator ---",
		Prompt:  "Enter the password length (or 'sair' to quit): ",
		Goodbye: "Leaving the password generator.",
		Handler: func(_ context.Context, line string, out io.Writer) error {
			length, err := ParseLength(line)
			if err != nil {
				return err
			}

			pw, err := gen.Generate(length)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Generated password: %s\n", pw)
			fmt.Fprintln(out, separator)
			return nil
		},
	}
}

// ParseLength validates a typed password length.
func ParseLength(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, Userf("Invalid input. Please enter an integer.")
	}
	if n <= 0 {
		return 0, Userf("Please enter a positive integer for the password length.")
	}
	if n > service.MaxLength {
		return 0, Userf("Please enter a length of at most %d.", service.MaxLength)
	}
	return n, nil
}

// CEPShell looks up each typed postal code.
func CEPShell(svc *service.LookupService) *Shell {
	return &Shell{
		Banner:  "--- Address Lookup by CEP ---",
		Prompt:  "Enter the CEP (digits only, or 'sair' to quit): ",
		Goodbye: "Leaving the program.",
		Handler: func(ctx context.Context, line string, out io.Writer) error {
			cep := client.NormalizeCEP(line)
			if cep == "" {
				return Userf("Please enter a valid CEP.")
			}

			fmt.Fprintf(out, "Looking up CEP: %s...\n", cep)
			addr, err := svc.Address(ctx, cep)
			if err != nil {
				return lookupFailure(err, "Could not get the address for the given CEP. Try again.")
			}
			RenderAddress(out, addr)
			return nil
		},
	}
}

// QuoteShell looks up each typed currency code.
func QuoteShell(svc *service.LookupService) *Shell {
	return &Shell{
		Banner: "--- Currency Quote Lookup ---\n" +
			"Common currencies: USD (US Dollar), EUR (Euro), GBP (Pound Sterling)",
		Prompt:  "Enter the currency code (e.g. USD, EUR) or 'sair' to quit: ",
		Goodbye: "Leaving the program.",
		Handler: func(ctx context.Context, line string, out io.Writer) error {
			code, err := client.NormalizeCurrency(line)
			if err != nil {
				return Userf("Invalid currency code. Please enter a 3-letter code (e.g. USD, EUR).")
			}

			fmt.Fprintf(out, "Looking up quote for %s...\n", code)
			q, err := svc.Quote(ctx, code)
			if err != nil {
				return lookupFailure(err, "Could not get the quote. Try again.")
			}
			RenderQuote(out, q)
			return nil
		},
	}
}

// ProfileShell generates a profile every time Enter is pressed.
func ProfileShell(svc *service.LookupService, offline bool) *Shell {
	return &Shell{
		Banner:  "Random User Profile Generator\n" + separator,
		Prompt:  "Press Enter to generate a new profile (or type 'sair' to quit): ",
		Goodbye: "Leaving the program.",
		Handler: func(ctx context.Context, _ string, out io.Writer) error {
			p, err := svc.Profile(ctx, offline)
			if err != nil {
				return lookupFailure(err, "Could not generate a profile right now. Try again.")
			}
			RenderProfile(out, p)
			return nil
		},
	}
}

// lookupFailure turns client errors into user-facing messages.
func lookupFailure(err error, generic string) error {
	var statusErr *client.StatusError
	switch {
	case errors.Is(err, client.ErrInvalidCEP):
		return Userf("Error: the CEP must contain 8 digits.")
	case errors.Is(err, client.ErrCEPNotFound):
		return Userf("CEP not found or invalid.\n%s", generic)
	case errors.Is(err, client.ErrInvalidCurrency):
		return Userf("Invalid currency code. Please enter a 3-letter code (e.g. USD, EUR).")
	case errors.Is(err, client.ErrCurrencyNotFound):
		return Userf("Error: currency not found or invalid quote pair.\n%s", generic)
	case errors.As(err, &statusErr):
		return Userf("API error (HTTP %d).\n%s", statusErr.StatusCode, generic)
	case errors.Is(err, client.ErrTransport):
		return Userf("Connection error with the API: %v\n%s", err, generic)
	case errors.Is(err, client.ErrDecode):
		return Userf("Error decoding the API response.\n%s", generic)
	case errors.Is(err, context.Canceled):
		return err
	}
	return err
}
