// Package elementalcheck statically scans a Go package directory for
// functions with the "elemental" signature shape: one or more
// non-variadic float64 parameters and a single float64 result.
//
// This is the one piece of infergo's ad.go model-compiler worth keeping
// without the rest of its AST-rewriting machinery: infergo's doc comment
// defines exactly this shape ("func (float64, float64*) float64") as the
// signature a function must have to be registered as an elemental with a
// derivative. Here it is repurposed as a pre-flight check for this
// module's handle-based Variable.Elemental1/Elemental2: run it over a
// package before wiring a function in as a custom elemental, to catch a
// signature mismatch (e.g. a stray variadic or int parameter) before a
// derivative mismatch produces a silently wrong gradient.
package elementalcheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"

	"golang.org/x/tools/go/ast/astutil"
)

// Candidate is a function whose signature matches the elemental shape.
type Candidate struct {
	Name string
	Pos  token.Position
}

// Check parses the Go source files directly in dir (not recursively) and
// returns every top-level function declaration with an elemental
// signature, ordered by source position.
func Check(dir string) ([]Candidate, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, 0)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			astutil.Apply(file, func(c *astutil.Cursor) bool {
				fn, ok := c.Node().(*ast.FuncDecl)
				if !ok {
					return true
				}
				if fn.Recv != nil {
					// Methods are never registered as elementals;
					// only free functions are.
					return true
				}
				if isElementalSignature(fn.Type) {
					candidates = append(candidates, Candidate{
						Name: fn.Name.Name,
						Pos:  fset.Position(fn.Pos()),
					})
				}
				return true
			}, nil)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Pos.Filename != candidates[j].Pos.Filename {
			return candidates[i].Pos.Filename < candidates[j].Pos.Filename
		}
		return candidates[i].Pos.Line < candidates[j].Pos.Line
	})
	return candidates, nil
}

// isElementalSignature reports whether ft is func(float64, float64...) float64:
// one or more non-variadic float64 parameters and a single float64 result.
func isElementalSignature(ft *ast.FuncType) bool {
	if ft.Results == nil || len(ft.Results.List) != 1 {
		return false
	}
	if !isFloat64(ft.Results.List[0].Type) {
		return false
	}
	if ft.Params == nil || len(ft.Params.List) == 0 {
		return false
	}
	for _, p := range ft.Params.List {
		if _, variadic := p.Type.(*ast.Ellipsis); variadic {
			return false
		}
		if !isFloat64(p.Type) {
			return false
		}
	}
	return true
}

func isFloat64(e ast.Expr) bool {
	ident, ok := e.(*ast.Ident)
	return ok && ident.Name == "float64"
}
