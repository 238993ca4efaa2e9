package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

func getJavaScriptLanguage() *sitter.Language {
	return javascript.GetLanguage()
}

// extractJavaScriptSymbols walks only program-level statements. Export
// wrappers own the span of the declaration they export.
func extractJavaScriptSymbols(root *sitter.Node, source []byte) []Symbol {
	var symbols []Symbol

	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)

		switch node.Type() {
		case "function_declaration", "generator_function_declaration":
			symbols = append(symbols, jsSymbol(node, node, source, SymbolFunction))
		case "class_declaration":
			symbols = append(symbols, jsSymbol(node, node, source, SymbolClass))
		case "export_statement":
			if decl := findChild(node, "function_declaration"); decl != nil {
				symbols = append(symbols, jsSymbol(node, decl, source, SymbolFunction))
			} else if decl := findChild(node, "generator_function_declaration"); decl != nil {
				symbols = append(symbols, jsSymbol(node, decl, source, SymbolFunction))
			} else if decl := findChild(node, "class_declaration"); decl != nil {
				symbols = append(symbols, jsSymbol(node, decl, source, SymbolClass))
			}
		}
	}

	return symbols
}

func jsSymbol(spanNode, declNode *sitter.Node, source []byte, kind SymbolKind) Symbol {
	name := ""
	if nameNode := findChild(declNode, "identifier"); nameNode != nil {
		name = nodeContent(nameNode, source)
	}

	return Symbol{
		Name:      name,
		Kind:      kind,
		StartByte: int(spanNode.StartByte()),
		EndByte:   int(spanNode.EndByte()),
	}
}
