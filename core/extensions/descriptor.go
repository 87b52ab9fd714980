// ABOUTME: Descriptor is the immutable identity of a syndication extension kind
// ABOUTME: The namespace URI is the identity key; the other fields describe the extension for humans

package extensions

import (
	"net/url"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	coreerrors "syndication-kit/core/errors"
)

// Descriptor identifies an extension kind: the XML namespace it owns, the prefix it
// prefers when declared, and descriptive metadata.
type Descriptor struct {
	prefix        string
	namespace     string
	version       *semver.Version
	name          string
	description   string
	documentation *url.URL
}

// DescriptorInfo carries the descriptive fields used to build a Descriptor
type DescriptorInfo struct {
	Prefix        string
	Namespace     string
	Version       string
	Name          string
	Description   string
	Documentation string
}

// NewDescriptor validates info and returns an immutable descriptor.
// Namespace is required; Version and Documentation are optional but must parse when present.
func NewDescriptor(info DescriptorInfo) (Descriptor, error) {
	if strings.TrimSpace(info.Namespace) == "" {
		return Descriptor{}, &coreerrors.ValidationError{Field: "namespace", Message: "cannot be empty"}
	}

	d := Descriptor{
		prefix:      info.Prefix,
		namespace:   info.Namespace,
		name:        info.Name,
		description: info.Description,
	}

	if info.Version != "" {
		v, err := semver.NewVersion(info.Version)
		if err != nil {
			return Descriptor{}, &coreerrors.ValidationError{Field: "version", Message: err.Error()}
		}
		d.version = v
	}

	if info.Documentation != "" {
		u, err := url.Parse(info.Documentation)
		if err != nil {
			return Descriptor{}, &coreerrors.ValidationError{Field: "documentation", Message: err.Error()}
		}
		d.documentation = u
	}

	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on invalid input.
// Intended for the constant descriptors of built-in extension kinds.
func MustDescriptor(info DescriptorInfo) Descriptor {
	d, err := NewDescriptor(info)
	if err != nil {
		panic(err)
	}
	return d
}

// Prefix returns the preferred namespace prefix; empty means the default namespace
func (d Descriptor) Prefix() string { return d.prefix }

// Namespace returns the XML namespace URI owned by the extension
func (d Descriptor) Namespace() string { return d.namespace }

// Version returns the extension specification version, or nil if unknown
func (d Descriptor) Version() *semver.Version { return d.version }

// Name returns the human-readable name
func (d Descriptor) Name() string { return d.name }

// Description returns a short description of the extension
func (d Descriptor) Description() string { return d.description }

// Documentation returns the specification URI, or nil if unknown
func (d Descriptor) Documentation() *url.URL { return d.documentation }

// IsZero reports whether d was never initialized
func (d Descriptor) IsZero() bool { return d.namespace == "" }

// String returns "prefix:namespace"
func (d Descriptor) String() string {
	return d.prefix + ":" + d.namespace
}

// CompareCommonAttributes compares description, documentation URI, name, version,
// namespace and prefix, OR-ing the sign of every comparison together.
//
// The result is zero exactly when every attribute is equal, so it is a sound equality
// test. It is NOT a valid ordering: mixed signs collapse to -1 and the relation is not
// transitive. Use SortDescriptors when an order is required.
func CompareCommonAttributes(a, b Descriptor) int {
	result := 0
	result |= strings.Compare(a.description, b.description)
	result |= strings.Compare(urlString(a.documentation), urlString(b.documentation))
	result |= strings.Compare(a.name, b.name)
	result |= compareVersions(a.version, b.version)
	result |= strings.Compare(a.namespace, b.namespace)
	result |= strings.Compare(a.prefix, b.prefix)
	return result
}

// Equal reports whether every attribute of a and b is equal
func Equal(a, b Descriptor) bool {
	return CompareCommonAttributes(a, b) == 0
}

// SortDescriptors orders descriptors by namespace, then prefix
func SortDescriptors(descriptors []Descriptor) {
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].namespace != descriptors[j].namespace {
			return descriptors[i].namespace < descriptors[j].namespace
		}
		return descriptors[i].prefix < descriptors[j].prefix
	})
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func compareVersions(a, b *semver.Version) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(b)
}
