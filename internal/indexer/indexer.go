package indexer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/config"
	"github.com/m32rimm/repoqa/internal/index"
)

// Progress receives file-count updates during a walk. Purely
// observational; implementations must not affect control flow.
type Progress interface {
	Step(done, total int, label string)
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) Step(int, int, string) {}

// Result contains statistics from an indexing run.
type Result struct {
	FilesProcessed int
	FilesSkipped   int
	ChunksCreated  int
	Errors         []error
}

// Indexer coordinates the pipeline: file discovery, chunking, and index
// construction. Files are processed sequentially in walker order.
type Indexer struct {
	walker       *Walker
	maxChunkSize int
	maxFileSize  int64
	logger       *slog.Logger
}

// New creates an indexer from configuration.
func New(cfg *config.Config) *Indexer {
	return &Indexer{
		walker:       NewWalker(cfg.Indexing.Include, cfg.Indexing.Exclude),
		maxChunkSize: cfg.Indexing.MaxChunkSize,
		maxFileSize:  cfg.Indexing.MaxFileSize,
		logger:       slog.Default(),
	}
}

// Index discovers files under root, chunks each by its extension-bound
// strategy, and builds the lexical index over the accumulated sequence.
// Unreadable or undecodable files are skipped with a warning; only walk
// failures abort.
func (idx *Indexer) Index(root string, progress Progress) (*index.Index, *Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve root: %w", err)
	}

	var files []string
	err = idx.walker.Walk(absRoot, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	result := &Result{}
	var allChunks []chunk.Chunk

	for i, path := range files {
		chunks, err := idx.processFile(path)
		if err != nil {
			// Recoverable: skip the file, keep the walk going.
			idx.logger.Warn("skipping file", "path", path, "reason", err)
			result.FilesSkipped++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
			continue
		}

		allChunks = append(allChunks, chunks...)
		result.FilesProcessed++
		progress.Step(i+1, len(files), path)
	}

	ix := index.Build(allChunks)
	result.ChunksCreated = ix.TotalChunks

	return ix, result, nil
}

// processFile reads one file and dispatches it to the chunker bound to its
// extension. Each chunk is tagged with the file's absolute path.
func (idx *Indexer) processFile(path string) ([]chunk.Chunk, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > idx.maxFileSize {
		return nil, fmt.Errorf("exceeds size ceiling (%d bytes)", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("not valid text")
	}

	chunker := chunk.ForPath(path)
	return chunker.Chunk(string(data), path, idx.maxChunkSize), nil
}
