package llm

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEmbedder embeds resume text through the Gemini API embedding
// endpoint (text-embedding-004, 768 dimensions).
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

func NewGeminiEmbedder(ctx context.Context, apiKey, modelName string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "text-embedding-004"
	}
	return &GeminiEmbedder{client: c, model: c.EmbeddingModel(modelName)}, nil
}

func (g *GeminiEmbedder) Close() error { return g.client.Close() }

func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return res.Embedding.Values, nil
}
