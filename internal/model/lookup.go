package model

import "time"

// Address is the subset of a ViaCEP record the tools display.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Quote is the latest exchange rate of a currency against BRL.
type Quote struct {
	Currency  string    `json:"currency"`
	Bid       float64   `json:"bid"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	CreatedAt string    `json:"create_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile sources.
const (
	ProfileSourceRemote  = "randomuser"
	ProfileSourceOffline = "offline"
)

// Profile is a random user profile.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country"`
	Source  string `json:"source"`
}
