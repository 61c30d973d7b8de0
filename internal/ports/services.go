package ports

import (
	"context"
	"time"
)

// SummaryRequest is the payload sent to the summarizer
type SummaryRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// Summarizer turns ticket fields into a short prose summary
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// SummaryCache stores generated summaries by key.
// Get reports found=false on a miss without an error.
type SummaryCache interface {
	Get(ctx context.Context, key string) (summary string, found bool, err error)
	Set(ctx context.Context, key, summary string, ttl time.Duration) error
}

// CompletionProvider sends a system and user prompt to an LLM and returns the reply text
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Provider() string
}

// TokenClaims are the claims carried in an admin access token
type TokenClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies passwords
type PasswordService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) error
}

// RateLimitService counts requests per key in a fixed window
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	GetAttempts(ctx context.Context, key string) (int, error)
}
