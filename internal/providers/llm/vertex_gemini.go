package llm

import (
	"context"
	"errors"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	m.GenerationConfig.ResponseMIMEType = "application/json"
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("empty model response")
	}
	return out, nil
}
