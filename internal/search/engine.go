// Package search ranks chunks against a query with BM25+.
package search

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/index"
)

// ErrInvalidArgument is returned for out-of-range caller input.
var ErrInvalidArgument = errors.New("invalid argument")

// Params are the BM25+ tuning constants. Delta is the floor term added per
// matching query term so a legitimate single occurrence in a long chunk
// still scores above zero.
type Params struct {
	K1    float64 `yaml:"k1"`
	B     float64 `yaml:"b"`
	Delta float64 `yaml:"delta"`
}

// DefaultParams returns the standard BM25+ constants.
func DefaultParams() Params {
	return Params{K1: 1.5, B: 0.75, Delta: 1.0}
}

// Result is one ranked chunk.
type Result struct {
	Chunk chunk.Chunk
	Score float64
}

// Engine scores chunks against queries using an immutable, already-built
// index. It is safe for concurrent use as long as no rebuild is in flight.
type Engine struct {
	ix     *index.Index
	params Params
}

// NewEngine creates a ranking engine over the given index.
func NewEngine(ix *index.Index, params Params) *Engine {
	return &Engine{ix: ix, params: params}
}

// Search tokenizes the query with the build-time tokenizer and returns the
// top k chunks by BM25+ score. Query terms absent from the vocabulary are
// silently ignored; a query made only of such terms returns an empty
// result, not an error. Ordering is score descending with ties broken by
// chunk insertion order, so reruns against an unchanged index are
// byte-identical.
func (e *Engine) Search(query string, k int) ([]Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidArgument, k)
	}
	if e.ix == nil || e.ix.TotalChunks == 0 {
		return nil, index.ErrNotIndexed
	}

	scores := make(map[int]float64)
	n := float64(e.ix.TotalChunks)

	for _, term := range index.Tokenize(query) {
		posting, ok := e.ix.Postings[term]
		if !ok {
			continue
		}

		df := float64(len(posting))
		idf := math.Log((n-df+0.5)/(df+0.5) + 1)

		for chunkID, tf := range posting {
			lengthNorm := 1.0
			if e.ix.AvgLength > 0 {
				lengthNorm = 1 - e.params.B +
					e.params.B*float64(e.ix.Lengths[chunkID])/e.ix.AvgLength
			}
			saturated := float64(tf) * (e.params.K1 + 1) /
				(float64(tf) + e.params.K1*lengthNorm)
			scores[chunkID] += idf * (saturated + e.params.Delta)
		}
	}

	results := make([]Result, 0, len(scores))
	for chunkID, score := range scores {
		results = append(results, Result{Chunk: e.ix.Chunks[chunkID], Score: score})
	}

	// Map iteration order is arbitrary; the comparator is total, so the
	// final ordering is deterministic.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
