// ABOUTME: Namespace resolver binding one extension namespace to its canonical prefix for XPath queries
// ABOUTME: Lets extension contexts select "geo:lat" regardless of the prefix used in the document

package xmlnav

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// fallbackPrefix is bound when an extension lives in a default (unprefixed) namespace,
// since XPath has no syntax for the default namespace
const fallbackPrefix = "ext"

// Resolver resolves qualified names for a single extension namespace
type Resolver struct {
	prefix    string
	namespace string
	exprs     map[string]*xpath.Expr
}

// NewResolver creates a resolver binding prefix to namespace
func NewResolver(prefix, namespace string) *Resolver {
	if prefix == "" {
		prefix = fallbackPrefix
	}
	return &Resolver{
		prefix:    prefix,
		namespace: namespace,
		exprs:     make(map[string]*xpath.Expr),
	}
}

// Prefix returns the prefix bound to the namespace in XPath expressions
func (r *Resolver) Prefix() string {
	return r.prefix
}

// Namespace returns the namespace URI this resolver is scoped to
func (r *Resolver) Namespace() string {
	return r.namespace
}

// Bindings returns the prefix to namespace map used when compiling expressions
func (r *Resolver) Bindings() map[string]string {
	return map[string]string{r.prefix: r.namespace}
}

// Compile compiles an XPath expression against this resolver's bindings
func (r *Resolver) Compile(expr string) (*xpath.Expr, error) {
	if compiled, ok := r.exprs[expr]; ok {
		return compiled, nil
	}
	compiled, err := xpath.CompileWithNS(expr, r.Bindings())
	if err != nil {
		return nil, err
	}
	r.exprs[expr] = compiled
	return compiled, nil
}

// Select returns the first child element of node named local in the resolver's namespace
func (r *Resolver) Select(node *xmlquery.Node, local string) *xmlquery.Node {
	expr, err := r.Compile(r.prefix + ":" + local)
	if err != nil || node == nil {
		return nil
	}
	return xmlquery.QuerySelector(node, expr)
}

// SelectAll returns every child element of node named local in the resolver's namespace
func (r *Resolver) SelectAll(node *xmlquery.Node, local string) []*xmlquery.Node {
	expr, err := r.Compile(r.prefix + ":" + local)
	if err != nil || node == nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(node, expr)
}

// Value returns the trimmed text of the first child element named local
func (r *Resolver) Value(node *xmlquery.Node, local string) (string, bool) {
	child := r.Select(node, local)
	if child == nil {
		return "", false
	}
	return Text(child), true
}

// Attr returns the value of the attribute named local in the resolver's namespace
func (r *Resolver) Attr(node *xmlquery.Node, local string) (string, bool) {
	return Attr(node, r.namespace, local)
}
