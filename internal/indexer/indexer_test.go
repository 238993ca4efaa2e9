package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/config"
)

func writeTree(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	pyContent := `def hello():
    """Say hello."""
    return "Hello"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "hello.py"), []byte(pyContent), 0644))

	mdContent := `# Guide

Run hello to greet.
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte(mdContent), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("plain notes\n"), 0644))

	// Excluded directory.
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "node_modules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "node_modules", "dep.js"), []byte("function x() {}\n"), 0644))

	return tmpDir
}

func TestIndexPipeline(t *testing.T) {
	tmpDir := writeTree(t)

	idx := New(config.DefaultConfig())
	ix, result, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesProcessed)
	assert.Equal(t, 0, result.FilesSkipped)
	assert.Equal(t, ix.TotalChunks, result.ChunksCreated)
	assert.Greater(t, ix.TotalChunks, 0)

	// Every chunk is tagged with its absolute path, and no excluded file
	// leaks in.
	for _, c := range ix.Chunks {
		assert.True(t, filepath.IsAbs(c.FilePath))
		assert.NotContains(t, c.FilePath, "node_modules")
	}
}

func TestIndexSkipsUndecodableFile(t *testing.T) {
	tmpDir := writeTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "binary.py"), []byte{0x00, 0xff, 0xfe, 0x00}, 0644))

	idx := New(config.DefaultConfig())
	_, result, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesSkipped)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.FilesProcessed)
}

func TestIndexSkipsOversizedFile(t *testing.T) {
	tmpDir := writeTree(t)

	cfg := config.DefaultConfig()
	cfg.Indexing.MaxFileSize = 16

	idx := New(cfg)
	_, result, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	// Every fixture file is larger than 16 bytes except notes.txt.
	assert.GreaterOrEqual(t, result.FilesSkipped, 2)
}

func TestIndexRebuildDeterministic(t *testing.T) {
	tmpDir := writeTree(t)
	idx := New(config.DefaultConfig())

	first, _, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	second, _, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	assert.Equal(t, first.TotalChunks, second.TotalChunks)
	assert.Equal(t, first.VocabularySize(), second.VocabularySize())
	assert.Equal(t, first.Chunks, second.Chunks)
}

func TestIndexChunkTypesByExtension(t *testing.T) {
	tmpDir := writeTree(t)

	idx := New(config.DefaultConfig())
	ix, _, err := idx.Index(tmpDir, NopProgress{})
	require.NoError(t, err)

	types := make(map[string]chunk.Type)
	for _, c := range ix.Chunks {
		types[filepath.Ext(c.FilePath)] = c.Type
	}

	assert.Equal(t, chunk.TypeFunction, types[".py"])
	assert.Equal(t, chunk.TypeHeaderSection, types[".md"])
	assert.Equal(t, chunk.TypeFallbackWindow, types[".txt"])
}

func TestIndexEmptyTree(t *testing.T) {
	idx := New(config.DefaultConfig())
	ix, result, err := idx.Index(t.TempDir(), NopProgress{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.FilesProcessed)
	assert.Equal(t, 0, ix.TotalChunks)
}

type countingProgress struct {
	steps int
	total int
}

func (p *countingProgress) Step(done, total int, label string) {
	p.steps++
	p.total = total
}

func TestIndexReportsProgress(t *testing.T) {
	tmpDir := writeTree(t)

	progress := &countingProgress{}
	idx := New(config.DefaultConfig())
	_, result, err := idx.Index(tmpDir, progress)
	require.NoError(t, err)

	assert.Equal(t, result.FilesProcessed, progress.steps)
	assert.Equal(t, 3, progress.total)
}
