// Package parser provides tree-sitter based parsing for extracting
// top-level definitions from source code.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language represents a supported programming language.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageGo         Language = "go"
)

// SymbolKind represents the type of code symbol.
type SymbolKind string

const (
	SymbolFunction SymbolKind = "function"
	SymbolClass    SymbolKind = "class"
)

// ErrMalformedSource is returned when the source cannot be parsed into a
// usable structural tree. Callers degrade to window chunking on this error.
var ErrMalformedSource = errors.New("malformed source")

// Symbol is a top-level definition with its byte span in the source.
// Nested definitions are owned by the enclosing symbol's span and are not
// reported separately.
type Symbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	StartByte int        `json:"start_byte"`
	EndByte   int        `json:"end_byte"`
}

// Parser wraps tree-sitter for a specific language.
type Parser struct {
	language Language
	parser   *sitter.Parser
}

// NewParser creates a parser for the given language.
func NewParser(lang Language) (*Parser, error) {
	p := sitter.NewParser()

	switch lang {
	case LanguagePython:
		p.SetLanguage(getPythonLanguage())
	case LanguageJavaScript, LanguageTypeScript:
		p.SetLanguage(getJavaScriptLanguage())
	case LanguageGo:
		p.SetLanguage(getGoLanguage())
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	return &Parser{
		language: lang,
		parser:   p,
	}, nil
}

// Parse parses source code and extracts top-level symbols. Returns
// ErrMalformedSource when the tree contains syntax errors, so callers can
// branch to a degraded strategy instead of trusting partial spans.
func (p *Parser) Parse(source []byte) ([]Symbol, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, ErrMalformedSource
	}

	switch p.language {
	case LanguagePython:
		return extractPythonSymbols(root, source), nil
	case LanguageJavaScript, LanguageTypeScript:
		return extractJavaScriptSymbols(root, source), nil
	case LanguageGo:
		return extractGoSymbols(root, source), nil
	default:
		return nil, fmt.Errorf("extraction not implemented for: %s", p.language)
	}
}

// DetectLanguage determines language from file extension.
func DetectLanguage(filePath string) (Language, bool) {
	switch {
	case hasExtension(filePath, ".py"):
		return LanguagePython, true
	case hasExtension(filePath, ".js", ".jsx"):
		return LanguageJavaScript, true
	case hasExtension(filePath, ".ts", ".tsx"):
		return LanguageTypeScript, true
	case hasExtension(filePath, ".go"):
		return LanguageGo, true
	default:
		return "", false
	}
}

func hasExtension(path string, exts ...string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Helper functions shared by the language extractors.

func findChild(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func nodeContent(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
