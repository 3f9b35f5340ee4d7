package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaultpass/toolbox/internal/model"
)

type randomUserResponse struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email    string `json:"email"`
		Location struct {
			Country string `json:"country"`
		} `json:"location"`
	} `json:"results"`
}

// RandomProfile fetches one random user from randomuser.me.
func (c *Client) RandomProfile(ctx context.Context) (model.Profile, error) {
	var body randomUserResponse
	url := strings.TrimRight(c.endpoints.RandomUser, "/") + "/api/"
	if err := c.getJSON(ctx, url, &body); err != nil {
		return model.Profile{}, fmt.Errorf("randomuser: %w", err)
	}

	if len(body.Results) == 0 {
		return model.Profile{}, fmt.Errorf("%w: missing field results", ErrDecode)
	}
	u := body.Results[0]

	switch {
	case u.Name.First == "" && u.Name.Last == "":
		return model.Profile{}, fmt.Errorf("%w: missing field name", ErrDecode)
	case u.Email == "":
		return model.Profile{}, fmt.Errorf("%w: missing field email", ErrDecode)
	}

	return model.Profile{
		Name:    strings.TrimSpace(u.Name.First + " " + u.Name.Last),
		Email:   u.Email,
		Country: u.Location.Country,
		Source:  model.ProfileSourceRemote,
	}, nil
}
