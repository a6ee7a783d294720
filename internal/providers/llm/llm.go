package llm

import "context"

// Provider produces a single completion for a prompt. The screening
// service asks for strict JSON and parses the reply itself.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Embedder maps text onto the vector space used for similar-candidate
// lookups (dimension must match the applications.resume_embedding column).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}
