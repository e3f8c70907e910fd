package outline

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/peco/flash/viewport"
)

// DefaultGoProviderSize is the number of files whose outline is kept.
const DefaultGoProviderSize = 128

// NewGoProvider creates a GoProvider remembering up to size outlines.
func NewGoProvider(size int) (*GoProvider, error) {
	memo, err := lru.New[string, goEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create outline cache: %w", err)
	}
	return &GoProvider{memo: memo}, nil
}

// Outline parses doc, which must be the path to a Go source file.
// Documents that are not Go files have no outline.
func (p *GoProvider) Outline(ctx context.Context, doc string) ([]*Symbol, error) {
	if filepath.Ext(doc) != ".go" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fi, err := os.Stat(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", doc, err)
	}

	if e, ok := p.memo.Get(doc); ok && e.size == fi.Size() && e.modTime.Equal(fi.ModTime()) {
		return e.symbols, nil
	}

	src, err := os.ReadFile(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc, err)
	}

	symbols, err := OutlineGo(doc, src)
	if err != nil {
		return nil, err
	}
	p.memo.Add(doc, goEntry{size: fi.Size(), modTime: fi.ModTime(), symbols: symbols})
	return symbols, nil
}

// OutlineGo builds the outline of a Go source file. Types carry their
// fields and methods as children; functions, constants and variables
// are top level symbols. A file with syntax errors yields whatever
// declarations could be parsed.
func OutlineGo(filename string, src []byte) ([]*Symbol, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if f == nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	b := goBuilder{fset: fset, src: src, types: map[string]*Symbol{}}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			b.genDecl(d)
		case *ast.FuncDecl:
			b.funcDecl(d)
		}
	}
	// methods of types declared in other files of the package
	for _, recv := range b.order {
		b.roots = append(b.roots, b.pending[recv]...)
	}
	return b.roots, nil
}

type goBuilder struct {
	fset    *token.FileSet
	src     []byte
	roots   []*Symbol
	types   map[string]*Symbol
	pending map[string][]*Symbol
	order   []string
}

// position converts a token.Pos into a zero-based line and a rune
// based column.
func (b *goBuilder) position(pos token.Pos) viewport.Position {
	p := b.fset.Position(pos)
	lineStart := p.Offset - (p.Column - 1)
	col := 0
	if lineStart >= 0 && p.Offset <= len(b.src) {
		col = utf8.RuneCount(b.src[lineStart:p.Offset])
	}
	return viewport.Position{Line: p.Line - 1, Column: col}
}

func (b *goBuilder) symbol(ident *ast.Ident, kind string) *Symbol {
	return &Symbol{Name: ident.Name, Kind: kind, Start: b.position(ident.Pos())}
}

func (b *goBuilder) genDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			sym := b.symbol(s.Name, "type")
			if st, ok := s.Type.(*ast.StructType); ok {
				for _, field := range st.Fields.List {
					for _, name := range field.Names {
						sym.Children = append(sym.Children, b.symbol(name, "field"))
					}
				}
			}
			sym.Children = append(sym.Children, b.pending[s.Name.Name]...)
			delete(b.pending, s.Name.Name)
			b.types[s.Name.Name] = sym
			b.roots = append(b.roots, sym)
		case *ast.ValueSpec:
			kind := "var"
			if d.Tok == token.CONST {
				kind = "const"
			}
			for _, name := range s.Names {
				if name.Name == "_" {
					continue
				}
				b.roots = append(b.roots, b.symbol(name, kind))
			}
		}
	}
}

func (b *goBuilder) funcDecl(d *ast.FuncDecl) {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		b.roots = append(b.roots, b.symbol(d.Name, "func"))
		return
	}

	sym := b.symbol(d.Name, "method")
	recv := receiverName(d.Recv.List[0].Type)
	if parent, ok := b.types[recv]; ok {
		parent.Children = append(parent.Children, sym)
		return
	}
	// methods may be declared before their type
	if b.pending == nil {
		b.pending = map[string][]*Symbol{}
	}
	if _, ok := b.pending[recv]; !ok {
		b.order = append(b.order, recv)
	}
	b.pending[recv] = append(b.pending[recv], sym)
}

func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}
