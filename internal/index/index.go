// Package index builds the lexical inverted index over a chunk corpus.
package index

import (
	"errors"
	"sort"

	"github.com/m32rimm/repoqa/internal/chunk"
)

// ErrNotIndexed is returned when an operation needs an index that was never
// built or failed to load. Distinguishes "no index" from "no matches".
var ErrNotIndexed = errors.New("index not built")

// Index holds the term statistics for one corpus snapshot. It is built
// once, immutable afterwards, and safe for concurrent readers.
type Index struct {
	// Chunks is the corpus in insertion order; a chunk's ID is its
	// position here.
	Chunks []chunk.Chunk

	// Postings maps term -> chunk ID -> raw term frequency.
	Postings map[string]map[int]int

	// Lengths holds the token count of each chunk, parallel to Chunks.
	Lengths []int

	AvgLength   float64
	TotalChunks int
}

// Build constructs the index over the ordered chunk sequence, assigning
// each chunk its position as ID. Chunk order must be deterministic across
// rebuilds of an unchanged corpus; everything else here follows from it.
func Build(chunks []chunk.Chunk) *Index {
	ix := &Index{
		Chunks:      chunks,
		Postings:    make(map[string]map[int]int),
		Lengths:     make([]int, len(chunks)),
		TotalChunks: len(chunks),
	}

	totalTokens := 0
	for i := range chunks {
		chunks[i].ID = i

		tokens := Tokenize(chunks[i].Text)
		ix.Lengths[i] = len(tokens)
		totalTokens += len(tokens)

		for _, term := range tokens {
			posting := ix.Postings[term]
			if posting == nil {
				posting = make(map[int]int)
				ix.Postings[term] = posting
			}
			posting[i]++
		}
	}

	if len(chunks) > 0 {
		ix.AvgLength = float64(totalTokens) / float64(len(chunks))
	}

	return ix
}

// DocFreq returns the number of chunks containing term.
func (ix *Index) DocFreq(term string) int {
	return len(ix.Postings[term])
}

// VocabularySize returns the number of distinct terms in the corpus.
func (ix *Index) VocabularySize() int {
	return len(ix.Postings)
}

// Vocabulary returns the sorted distinct terms of the corpus.
func (ix *Index) Vocabulary() []string {
	terms := make([]string, 0, len(ix.Postings))
	for term := range ix.Postings {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
