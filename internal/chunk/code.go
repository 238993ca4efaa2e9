package chunk

import (
	"github.com/m32rimm/repoqa/internal/parser"
)

// CodeChunker emits one chunk per top-level function or class definition,
// using the definition's source span. Malformed files degrade to window
// chunking rather than failing.
type CodeChunker struct {
	lang parser.Language
}

// NewCodeChunker creates a structure-aware chunker for the given language.
func NewCodeChunker(lang parser.Language) CodeChunker {
	return CodeChunker{lang: lang}
}

// Chunk parses content and maps each top-level definition to a chunk. A
// definition larger than maxChunkSize is sub-split by windows that keep the
// definition's outer boundaries. Parse failure, or a file with no
// definitions at all, falls back to plain windows over the whole file.
func (c CodeChunker) Chunk(content, filePath string, maxChunkSize int) []Chunk {
	p, err := parser.NewParser(c.lang)
	if err != nil {
		return windows(content, filePath, 0, maxChunkSize)
	}

	symbols, err := p.Parse([]byte(content))
	if err != nil || len(symbols) == 0 {
		return windows(content, filePath, 0, maxChunkSize)
	}

	var chunks []Chunk
	for _, sym := range symbols {
		text := content[sym.StartByte:sym.EndByte]

		if len(text) > maxChunkSize {
			sub := windows(text, filePath, sym.StartByte, maxChunkSize)
			for i := range sub {
				sub[i].SymbolName = sym.Name
			}
			chunks = append(chunks, sub...)
			continue
		}

		typ := TypeFunction
		if sym.Kind == parser.SymbolClass {
			typ = TypeClass
		}

		chunks = append(chunks, Chunk{
			FilePath:   filePath,
			StartChar:  sym.StartByte,
			EndChar:    sym.EndByte,
			Type:       typ,
			Text:       text,
			SymbolName: sym.Name,
		})
	}

	return chunks
}
