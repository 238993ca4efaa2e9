package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func getPythonLanguage() *sitter.Language {
	return python.GetLanguage()
}

// extractPythonSymbols walks only the module-level statements. Functions and
// classes defined inside another definition stay inside the outer span.
func extractPythonSymbols(root *sitter.Node, source []byte) []Symbol {
	var symbols []Symbol

	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)

		switch node.Type() {
		case "function_definition":
			symbols = append(symbols, pythonSymbol(node, node, source, SymbolFunction))
		case "class_definition":
			symbols = append(symbols, pythonSymbol(node, node, source, SymbolClass))
		case "decorated_definition":
			// The decorated node owns the span so decorators are kept with
			// the definition they apply to.
			if def := findChild(node, "function_definition"); def != nil {
				symbols = append(symbols, pythonSymbol(node, def, source, SymbolFunction))
			} else if def := findChild(node, "class_definition"); def != nil {
				symbols = append(symbols, pythonSymbol(node, def, source, SymbolClass))
			}
		}
	}

	return symbols
}

// pythonSymbol builds a symbol spanning spanNode, named from defNode.
func pythonSymbol(spanNode, defNode *sitter.Node, source []byte, kind SymbolKind) Symbol {
	name := ""
	if nameNode := findChild(defNode, "identifier"); nameNode != nil {
		name = nodeContent(nameNode, source)
	}

	return Symbol{
		Name:      name,
		Kind:      kind,
		StartByte: int(spanNode.StartByte()),
		EndByte:   int(spanNode.EndByte()),
	}
}
