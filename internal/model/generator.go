package model

// GenerateRequest represents a password generation request.
// Zero values fall back to service defaults.
type GenerateRequest struct {
	Length int  `json:"length"`
	Count  int  `json:"count"`
	Hash   bool `json:"hash"`
}

// GeneratedPassword is a single generated secret, optionally with its argon2id hash.
type GeneratedPassword struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
}
