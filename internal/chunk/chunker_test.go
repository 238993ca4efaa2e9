package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		kind FileKind
	}{
		{"main.py", CodeFile},
		{"app.js", CodeFile},
		{"component.tsx", CodeFile},
		{"server.go", CodeFile},
		{"README.md", MarkupFile},
		{"guide.rst", MarkupFile},
		{"notes.txt", OtherFile},
		{"config.yaml", OtherFile},
		{"data.json", OtherFile},
		{"Makefile", OtherFile},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindForPath(tt.path))
		})
	}
}

func TestForPathBindsStrategies(t *testing.T) {
	assert.IsType(t, CodeChunker{}, ForPath("main.py"))
	assert.IsType(t, MarkdownChunker{}, ForPath("README.md"))
	assert.IsType(t, WindowChunker{}, ForPath("notes.txt"))
}
