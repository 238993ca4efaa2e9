package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m32rimm/repoqa/internal/chunk"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		wants []string
	}{
		{"simple", "Hello World", []string{"hello", "world"}},
		{"punctuation", "get_user(user_id) -> dict:", []string{"get_user", "user_id", "dict"}},
		{"mixed case and digits", "BM25 Ranking v2", []string{"bm25", "ranking", "v2"}},
		{"underscores kept", "snake_case_name", []string{"snake_case_name"}},
		{"empty", "", nil},
		{"only punctuation", "--- *** !!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, Tokenize(tt.text))
		})
	}
}

func testChunks() []chunk.Chunk {
	return []chunk.Chunk{
		{FilePath: "a.py", StartChar: 0, EndChar: 20, Type: chunk.TypeFunction, Text: "def parse_config(path)"},
		{FilePath: "a.py", StartChar: 20, EndChar: 40, Type: chunk.TypeFunction, Text: "def load_config(path) config config"},
		{FilePath: "b.md", StartChar: 0, EndChar: 30, Type: chunk.TypeHeaderSection, Text: "# Config\nHow to configure."},
	}
}

func TestBuildStatistics(t *testing.T) {
	ix := Build(testChunks())

	assert.Equal(t, 3, ix.TotalChunks)
	require.Len(t, ix.Lengths, 3)

	// IDs follow insertion order.
	for i, c := range ix.Chunks {
		assert.Equal(t, i, c.ID)
	}

	// "config" appears in chunks 1 (tf=2) and 2 (tf=1); "parse_config"
	// tokenizes as one term.
	assert.Equal(t, 2, ix.DocFreq("config"))
	assert.Equal(t, 2, ix.Postings["config"][1])
	assert.Equal(t, 1, ix.Postings["config"][2])
	assert.Equal(t, 1, ix.DocFreq("parse_config"))
	assert.Equal(t, 0, ix.DocFreq("missing"))

	total := 0
	for _, l := range ix.Lengths {
		total += l
	}
	assert.InDelta(t, float64(total)/3.0, ix.AvgLength, 1e-9)
}

func TestBuildRebuildDeterministic(t *testing.T) {
	first := Build(testChunks())
	second := Build(testChunks())

	assert.Equal(t, first.TotalChunks, second.TotalChunks)
	assert.Equal(t, first.VocabularySize(), second.VocabularySize())
	assert.Equal(t, first.Vocabulary(), second.Vocabulary())
	assert.Equal(t, first.Postings, second.Postings)
	assert.Equal(t, first.Lengths, second.Lengths)
}

func TestBuildEmptyCorpus(t *testing.T) {
	ix := Build(nil)

	assert.Equal(t, 0, ix.TotalChunks)
	assert.Zero(t, ix.AvgLength)
	assert.Equal(t, 0, ix.VocabularySize())
}

func TestVocabularySorted(t *testing.T) {
	ix := Build(testChunks())

	vocab := ix.Vocabulary()
	for i := 1; i < len(vocab); i++ {
		assert.Less(t, vocab[i-1], vocab[i])
	}
}
