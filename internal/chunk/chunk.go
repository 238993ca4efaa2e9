// Package chunk provides types and strategies for splitting files into
// retrievable units.
package chunk

// Type classifies how a chunk was produced.
type Type string

const (
	TypeFunction       Type = "function"
	TypeClass          Type = "class"
	TypeHeaderSection  Type = "header_section"
	TypeFallbackWindow Type = "fallback_window"
)

// Chunk is a contiguous span of a source file treated as one retrievable
// unit. StartChar/EndChar are half-open byte offsets into the original file
// content, so Text == content[StartChar:EndChar] always holds.
type Chunk struct {
	// ID is the position in the global chunk sequence, assigned at index
	// build time.
	ID       int    `json:"id"`
	FilePath string `json:"file_path"`

	StartChar int `json:"start_char"`
	EndChar   int `json:"end_char"`

	Type Type   `json:"chunk_type"`
	Text string `json:"text"`

	// SymbolName is set for code chunks and their oversize sub-splits.
	SymbolName string `json:"symbol_name,omitempty"`
	// HeadingPath is set for documentation chunks and their sub-splits.
	HeadingPath string `json:"heading_path,omitempty"`
}

// Chunker splits file content into an ordered sequence of chunks.
type Chunker interface {
	Chunk(content, filePath string, maxChunkSize int) []Chunk
}
