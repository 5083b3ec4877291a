package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// AIService maps the /ai endpoints
type AIService struct {
	c *Client
}

// Ask submits a natural-language recommendation query
func (s *AIService) Ask(ctx context.Context, req domain.AskAIRequest) (domain.AskAIResponse, error) {
	return post[domain.AskAIResponse](ctx, s.c, "/ai/ask", req)
}
