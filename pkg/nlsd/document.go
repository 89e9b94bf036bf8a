package nlsd

import (
	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-nlsd/internal/engine"
	"github.com/shapestone/shape-nlsd/pkg/value"
)

// Document is the introspectable counterpart to Decode/Encode: instead of
// binding straight into a Go type, it holds a parsed document as a
// value.Default tree that can be walked with pkg/nloq queries, converted
// to the shape-core AST for tooling that already speaks it, or bridged to
// YAML. Reach for Decode/Encode for the common bind-to-a-struct case;
// reach for Document when the caller needs to inspect or transform a
// document's shape generically.
type Document struct {
	root value.Default
}

// ParseDocument parses an NLSD document into a Document.
func ParseDocument(data []byte, opts ...Option) (*Document, error) {
	o := buildOptions(opts)
	v, err := engine.Decode(data, o.trace, o.strictEOF)
	if err != nil {
		return nil, translateEngineErr(err)
	}
	return &Document{root: v}, nil
}

// Root returns the document's top-level value.
func (d *Document) Root() value.Default { return d.root }

// Query runs an NLOQ-parsed path against the document and returns the
// value it selects.
func (d *Document) Query(path []value.Query) (value.Default, error) {
	return value.Access(d.root, path)
}

// String renders the document back out as NLSD text.
func (d *Document) String() string {
	return engine.Encode(d.root)
}

// AST converts the document to a shape-core ast.SchemaNode.
func (d *Document) AST() (ast.SchemaNode, error) {
	return value.ToAST(d.root)
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return value.ToYAML(d.root)
}

// NewDocument wraps an already-built value.Default as a Document, for
// callers assembling one programmatically before calling String/YAML/AST.
func NewDocument(root value.Default) *Document {
	return &Document{root: root}
}
