// ABOUTME: Read-side helpers over xmlquery trees: namespace scope resolution and element lookup
// ABOUTME: Namespaces are always compared by URI, never by the prefix a document happens to use

package xmlnav

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// xmlnsPrefix is the reserved attribute space used by namespace declarations
const xmlnsPrefix = "xmlns"

// IsNamespaceDeclaration reports whether attr is an xmlns or xmlns:prefix declaration
func IsNamespaceDeclaration(attr xmlquery.Attr) bool {
	if attr.Name.Space == xmlnsPrefix {
		return true
	}
	return attr.Name.Space == "" && attr.Name.Local == xmlnsPrefix
}

// InScopeNamespaces returns the prefix to namespace URI bindings visible at node.
// The nearest declaration wins; the default namespace uses the empty prefix.
func InScopeNamespaces(node *xmlquery.Node) map[string]string {
	bindings := make(map[string]string)
	for n := node; n != nil; n = n.Parent {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		for _, attr := range n.Attr {
			if !IsNamespaceDeclaration(attr) {
				continue
			}
			prefix := ""
			if attr.Name.Space == xmlnsPrefix {
				prefix = attr.Name.Local
			}
			if _, seen := bindings[prefix]; !seen {
				bindings[prefix] = attr.Value
			}
		}
	}
	return bindings
}

// IsDeclared reports whether namespace is bound to any prefix in scope at node
func IsDeclared(node *xmlquery.Node, namespace string) bool {
	if namespace == "" {
		return false
	}
	for _, uri := range InScopeNamespaces(node) {
		if uri == namespace {
			return true
		}
	}
	return false
}

// UsesNamespace reports whether node or any element or attribute below it is in namespace
func UsesNamespace(node *xmlquery.Node, namespace string) bool {
	if node == nil || namespace == "" {
		return false
	}
	if node.Type == xmlquery.ElementNode {
		if node.NamespaceURI == namespace {
			return true
		}
		for _, attr := range node.Attr {
			if !IsNamespaceDeclaration(attr) && attr.NamespaceURI == namespace {
				return true
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if UsesNamespace(child, namespace) {
			return true
		}
	}
	return false
}

// Root returns the document element of a parsed document, or node itself if it is an element
func Root(node *xmlquery.Node) *xmlquery.Node {
	if node == nil {
		return nil
	}
	if node.Type == xmlquery.ElementNode {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// ChildElements returns the element children of node in document order
func ChildElements(node *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node
	if node == nil {
		return children
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, child)
		}
	}
	return children
}

// Child returns the first element child with the given namespace and local name
func Child(node *xmlquery.Node, namespace, local string) *xmlquery.Node {
	for _, child := range ChildElements(node) {
		if child.NamespaceURI == namespace && child.Data == local {
			return child
		}
	}
	return nil
}

// Children returns every element child with the given namespace and local name
func Children(node *xmlquery.Node, namespace, local string) []*xmlquery.Node {
	var matches []*xmlquery.Node
	for _, child := range ChildElements(node) {
		if child.NamespaceURI == namespace && child.Data == local {
			matches = append(matches, child)
		}
	}
	return matches
}

// ChildText returns the trimmed text of the first matching child, or "" if absent
func ChildText(node *xmlquery.Node, namespace, local string) string {
	if child := Child(node, namespace, local); child != nil {
		return Text(child)
	}
	return ""
}

// Text returns the trimmed inner text of node
func Text(node *xmlquery.Node) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

// Attr returns the value of the attribute with the given namespace and local name.
// Pass an empty namespace for unqualified attributes.
func Attr(node *xmlquery.Node, namespace, local string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if IsNamespaceDeclaration(attr) {
			continue
		}
		if attr.Name.Local == local && attr.NamespaceURI == namespace {
			return attr.Value, true
		}
	}
	return "", false
}

// SubtreeDeclarations returns the namespace URIs declared on node or any element below it
func SubtreeDeclarations(node *xmlquery.Node) map[string]bool {
	declared := make(map[string]bool)
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode {
			for _, attr := range n.Attr {
				if IsNamespaceDeclaration(attr) && attr.Value != "" {
					declared[attr.Value] = true
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return declared
}
