package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrMissingAPIKey 未配置生成服务凭证
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// ContentGenerator 生成接口，*genai.Models 满足该接口，测试中可替换
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiGenerator 创建 Gemini 客户端
func NewGeminiGenerator(ctx context.Context, apiKey string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client.Models, nil
}

// groundedRequest 固定的人设 + Google Search grounding
func groundedRequest(query, systemInstruction string) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: query}},
		},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	return contents, config
}
