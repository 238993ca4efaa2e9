// Package llm generates answers from retrieved context through an
// OpenAI-compatible chat endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"github.com/m32rimm/repoqa/internal/chunk"
)

// Client talks to an OpenAI-compatible chat endpoint. A local Ollama
// server works through its /v1 compatibility API with any (or no) key.
type Client struct {
	api         *openai.Client
	model       string
	tokenBudget int

	countOnce sync.Once
	count     func(string) int
}

// NewClient creates an answer-generation client. The API key is read from
// OPENAI_API_KEY; an empty key is allowed for local endpoints.
func NewClient(baseURL, model string, tokenBudget int) *Client {
	cfg := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		tokenBudget: tokenBudget,
	}
}

// GenerateAnswer builds a prompt from the retrieved chunks, truncated to
// the token budget, and asks the model to answer from that context only.
func (c *Client) GenerateAnswer(ctx context.Context, question string, chunks []chunk.Chunk) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errors.New("empty question")
	}

	prompt := buildPrompt(question, chunks, c.tokenBudget, c.counter())

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// counter returns the token counting function, initialized once. Falls
// back to a character estimate when the encoding is unavailable offline.
func (c *Client) counter() func(string) int {
	c.countOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			c.count = func(s string) int { return len(s) / 4 }
			return
		}
		c.count = func(s string) int {
			return len(enc.Encode(s, nil, nil))
		}
	})
	return c.count
}

// buildPrompt assembles the context sections for the question. Chunks are
// added in ranking order until the token budget is reached; the first
// chunk is always included.
func buildPrompt(question string, chunks []chunk.Chunk, budget int, count func(string) int) string {
	var sections []string
	used := 0

	for i, c := range chunks {
		section := fmt.Sprintf("Source %d (%s):\n%s\n", i+1, c.FilePath, c.Text)
		cost := count(section)
		if i > 0 && used+cost > budget {
			break
		}
		sections = append(sections, section)
		used += cost
	}

	return fmt.Sprintf(`Based on the following context from a code repository, answer the question below.

Context:
%s

Question: %s

Answer based only on the information in the context above. If the context
does not contain enough information to answer the question, say so.

Answer:`, strings.Join(sections, "\n---\n"), question)
}
