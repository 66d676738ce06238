// internal/service/generator_gemini.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mylang_backend/internal/config"
	"mylang_backend/internal/middleware"

	"google.golang.org/genai"
)

// GeminiGenerator は Gemini API を使う TextGenerator の実装です
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator はAPIキーとモデル名からGeminiクライアントを生成します
func NewGeminiGenerator(ctx context.Context, cfg *config.Config) (*GeminiGenerator, error) {
	if cfg.Chat.GeminiAPIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Chat.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Chat.GeminiModel,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	logger := middleware.GetLogger(ctx)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	})
	if err != nil {
		logger.Error("Error calling Gemini API", "error", err, "model", g.model)
		return "", fmt.Errorf("GeminiGenerator.Generate: %w", err)
	}

	// 候補が空・Partが空のレスポンスは不正とみなす
	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		logger.Warn("Gemini returned empty or invalid response", "model", g.model)
		return "", errors.New("GeminiGenerator.Generate: empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("GeminiGenerator.Generate: response contained no text")
	}
	return text, nil
}
