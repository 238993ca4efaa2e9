package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func getGoLanguage() *sitter.Language {
	return golang.GetLanguage()
}

// extractGoSymbols reports top-level functions, methods, and type
// declarations. Type declarations map to the class kind.
func extractGoSymbols(root *sitter.Node, source []byte) []Symbol {
	var symbols []Symbol

	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)

		switch node.Type() {
		case "function_declaration":
			symbols = append(symbols, goSymbol(node, source, "identifier", SymbolFunction))
		case "method_declaration":
			symbols = append(symbols, goSymbol(node, source, "field_identifier", SymbolFunction))
		case "type_declaration":
			sym := Symbol{
				Kind:      SymbolClass,
				StartByte: int(node.StartByte()),
				EndByte:   int(node.EndByte()),
			}
			if spec := findChild(node, "type_spec"); spec != nil {
				if nameNode := findChild(spec, "type_identifier"); nameNode != nil {
					sym.Name = nodeContent(nameNode, source)
				}
			}
			symbols = append(symbols, sym)
		}
	}

	return symbols
}

func goSymbol(node *sitter.Node, source []byte, nameType string, kind SymbolKind) Symbol {
	name := ""
	if nameNode := findChild(node, nameType); nameNode != nil {
		name = nodeContent(nameNode, source)
	}

	return Symbol{
		Name:      name,
		Kind:      kind,
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
	}
}
