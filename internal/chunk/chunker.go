package chunk

import (
	"path/filepath"
	"strings"

	"github.com/m32rimm/repoqa/internal/parser"
)

// FileKind classifies a file extension into one chunker strategy.
type FileKind int

const (
	CodeFile FileKind = iota
	MarkupFile
	OtherFile
)

// kindByExtension is the static dispatch table. Extensions absent from the
// table are OtherFile; binary files are filtered upstream by the walker and
// never reach a chunker.
var kindByExtension = map[string]FileKind{
	".py":  CodeFile,
	".js":  CodeFile,
	".jsx": CodeFile,
	".ts":  CodeFile,
	".tsx": CodeFile,
	".go":  CodeFile,

	".md":       MarkupFile,
	".markdown": MarkupFile,
	".rst":      MarkupFile,
}

// KindForPath resolves the strategy kind for a file path.
func KindForPath(path string) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return OtherFile
}

// ForPath returns the chunker bound to the file's kind.
func ForPath(path string) Chunker {
	switch KindForPath(path) {
	case CodeFile:
		if lang, ok := parser.DetectLanguage(path); ok {
			return NewCodeChunker(lang)
		}
		return WindowChunker{}
	case MarkupFile:
		return MarkdownChunker{}
	default:
		return WindowChunker{}
	}
}
