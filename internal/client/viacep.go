package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vaultpass/toolbox/internal/model"
)

// NotInformed replaces empty address fields.
const NotInformed = "not informed"

var (
	ErrInvalidCEP  = errors.New("CEP must contain 8 digits")
	ErrCEPNotFound = errors.New("CEP not found")
)

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// ViaCEP has sent both true and "true" here.
	Erro any `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

// NormalizeCEP keeps only the digits of raw.
func NormalizeCEP(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LookupCEP resolves a Brazilian postal code to an address.
func (c *Client) LookupCEP(ctx context.Context, cep string) (model.Address, error) {
	cep = NormalizeCEP(cep)
	if len(cep) != 8 {
		return model.Address{}, ErrInvalidCEP
	}

	var body viaCEPResponse
	url := fmt.Sprintf("%s/ws/%s/json/", strings.TrimRight(c.endpoints.ViaCEP, "/"), cep)
	if err := c.getJSON(ctx, url, &body); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 400 {
			return model.Address{}, ErrInvalidCEP
		}
		return model.Address{}, fmt.Errorf("viacep %s: %w", cep, err)
	}

	if body.notFound() {
		return model.Address{}, ErrCEPNotFound
	}

	return model.Address{
		CEP:          cep,
		Street:       orNotInformed(body.Logradouro),
		Neighborhood: orNotInformed(body.Bairro),
		City:         orNotInformed(body.Localidade),
		State:        orNotInformed(body.UF),
	}, nil
}

func orNotInformed(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	return s
}
