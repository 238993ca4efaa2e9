package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m32rimm/repoqa/internal/chunk"
)

// charCount makes budget math exact without a tokenizer download.
func charCount(s string) int { return len(s) }

func TestBuildPromptIncludesQuestionAndSources(t *testing.T) {
	chunks := []chunk.Chunk{
		{FilePath: "/repo/auth.py", Text: "def login(user): ..."},
		{FilePath: "/repo/README.md", Text: "# Auth flow"},
	}

	prompt := buildPrompt("How does login work?", chunks, 10000, charCount)

	assert.Contains(t, prompt, "Question: How does login work?")
	assert.Contains(t, prompt, "Source 1 (/repo/auth.py):")
	assert.Contains(t, prompt, "def login(user): ...")
	assert.Contains(t, prompt, "Source 2 (/repo/README.md):")
}

func TestBuildPromptRespectsTokenBudget(t *testing.T) {
	chunks := []chunk.Chunk{
		{FilePath: "/repo/a.py", Text: strings.Repeat("a", 100)},
		{FilePath: "/repo/b.py", Text: strings.Repeat("b", 100)},
		{FilePath: "/repo/c.py", Text: strings.Repeat("c", 100)},
	}

	// Budget fits roughly two sections.
	prompt := buildPrompt("q", chunks, 250, charCount)

	assert.Contains(t, prompt, "Source 1")
	assert.Contains(t, prompt, "Source 2")
	assert.NotContains(t, prompt, "Source 3")
}

func TestBuildPromptAlwaysKeepsTopChunk(t *testing.T) {
	chunks := []chunk.Chunk{
		{FilePath: "/repo/big.py", Text: strings.Repeat("x", 500)},
	}

	// Even with a budget smaller than the top chunk, the best hit stays.
	prompt := buildPrompt("q", chunks, 10, charCount)

	assert.Contains(t, prompt, "Source 1 (/repo/big.py):")
}

func TestBuildPromptNoChunks(t *testing.T) {
	prompt := buildPrompt("anything indexed?", nil, 1000, charCount)

	assert.Contains(t, prompt, "Question: anything indexed?")
	assert.NotContains(t, prompt, "Source 1")
}

func TestGenerateAnswerRejectsEmptyQuestion(t *testing.T) {
	c := NewClient("http://localhost:11434/v1", "qwen3:0.6b", 3000)

	_, err := c.GenerateAnswer(context.Background(), "   ", nil)
	require.Error(t, err)
}
