package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/index"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func buildTestIndex() *index.Index {
	return index.Build([]chunk.Chunk{
		{
			FilePath:   "/repo/auth.py",
			StartChar:  0,
			EndChar:    40,
			Type:       chunk.TypeFunction,
			Text:       "def login(user): validate password",
			SymbolName: "login",
		},
		{
			FilePath:    "/repo/README.md",
			StartChar:   0,
			EndChar:     30,
			Type:        chunk.TypeHeaderSection,
			Text:        "# Auth\nlogin and password flow",
			HeadingPath: "# Auth",
		},
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	original := buildTestIndex()
	require.NoError(t, st.Save(ctx, original))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, original.TotalChunks, loaded.TotalChunks)
	assert.InDelta(t, original.AvgLength, loaded.AvgLength, 1e-9)
	assert.Equal(t, original.Lengths, loaded.Lengths)
	assert.Equal(t, original.Postings, loaded.Postings)
	assert.Equal(t, original.Chunks, loaded.Chunks)
}

func TestLoadUnbuiltIndex(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, index.ErrNotIndexed)
}

func TestSaveReplacesWholesale(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, buildTestIndex()))

	// A rebuild with a smaller corpus must fully replace the old one.
	smaller := index.Build([]chunk.Chunk{
		{
			FilePath:  "/repo/db.py",
			StartChar: 0,
			EndChar:   20,
			Type:      chunk.TypeFunction,
			Text:      "def connect(dsn)",
		},
	})
	require.NoError(t, st.Save(ctx, smaller))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded.TotalChunks)
	require.Len(t, loaded.Chunks, 1)
	assert.Equal(t, "/repo/db.py", loaded.Chunks[0].FilePath)
	assert.Equal(t, 0, loaded.DocFreq("login"))
}

func TestSaveEmptyIndexLoadsAsNotIndexed(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, index.Build(nil)))

	_, err := st.Load(ctx)
	assert.ErrorIs(t, err, index.ErrNotIndexed)
}

func TestLoadedIndexSupportsSearchStatistics(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, buildTestIndex()))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, loaded.DocFreq("login"))
	assert.Equal(t, 1, loaded.DocFreq("validate"))
	assert.Equal(t, loaded.VocabularySize(), buildTestIndex().VocabularySize())
}
