package lang

import "sort"

// SymbolInfo holds the symbols and calls extracted from an AST node.
type SymbolInfo struct {
	Free  []string // free symbol names, sorted and unique
	Calls []string // called function names, in order of appearance
}

// CollectSymbols walks an AST node to collect its free symbols and the
// functions it calls. Built-in constants are never free, and the variable
// of a definite integrate(expr, v, a, b) is bound inside expr.
func CollectSymbols(node Node) SymbolInfo {
	free := make(map[string]bool)
	var info SymbolInfo
	collectSymbolsWalk(node, nil, free, &info)
	for name := range free {
		info.Free = append(info.Free, name)
	}
	sort.Strings(info.Free)
	return info
}

func collectSymbolsWalk(node Node, bound map[string]bool, free map[string]bool, info *SymbolInfo) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *VarRef:
		if !bound[n.Name] && !IsConstantName(n.Name) {
			free[n.Name] = true
		}
	case *BinaryExpr:
		collectSymbolsWalk(n.Left, bound, free, info)
		collectSymbolsWalk(n.Right, bound, free, info)
	case *UnaryExpr:
		collectSymbolsWalk(n.Operand, bound, free, info)
	case *FuncCall:
		info.Calls = append(info.Calls, n.Name)
		if n.Name == "integrate" && len(n.Args) == 4 {
			if v, ok := n.Args[1].(*VarRef); ok {
				inner := map[string]bool{v.Name: true}
				for k := range bound {
					inner[k] = true
				}
				collectSymbolsWalk(n.Args[0], inner, free, info)
				collectSymbolsWalk(n.Args[2], bound, free, info)
				collectSymbolsWalk(n.Args[3], bound, free, info)
				return
			}
		}
		for _, arg := range n.Args {
			collectSymbolsWalk(arg, bound, free, info)
		}
	case *NumberLit:
		// leaves
	}
}
