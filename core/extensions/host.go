// ABOUTME: Host contract implemented by every extensible syndication entity
// ABOUTME: Holder is the single shared implementation; entities embed it instead of repeating the logic

package extensions

import (
	coreerrors "syndication-kit/core/errors"
)

// Host is a syndication entity that can carry extensions
type Host interface {
	// Extensions returns the attached extensions in document order
	Extensions() []Extension

	// SetExtensions replaces the attached extensions.
	// A nil slice or a nil entry is rejected with an InvalidArgumentError.
	SetExtensions(exts []Extension) error

	// HasExtensions reports whether any extension is attached
	HasExtensions() bool

	// AddExtension appends ext. It fails only when ext is nil.
	AddExtension(ext Extension) (bool, error)

	// RemoveExtension removes the stored instance ext, reporting whether it was present
	RemoveExtension(ext Extension) bool

	// FindExtension returns the first extension matching, or nil when none does
	FindExtension(match Predicate) (Extension, error)
}

// Composite is implemented by hosts that contain other hosts (a feed and its entries).
// Auto-detection walks it to find every extension in a document graph.
type Composite interface {
	ExtensibleChildren() []Host
}

// Holder is an order-preserving extension collection implementing Host
type Holder struct {
	items []Extension
}

// Extensions returns a copy of the attached extensions
func (h *Holder) Extensions() []Extension {
	out := make([]Extension, len(h.items))
	copy(out, h.items)
	return out
}

// SetExtensions replaces the attached extensions
func (h *Holder) SetExtensions(exts []Extension) error {
	if exts == nil {
		return coreerrors.NewInvalidArgument("extensions")
	}
	for _, ext := range exts {
		if ext == nil {
			return &coreerrors.InvalidArgumentError{Argument: "extensions", Message: "contains a nil entry"}
		}
	}
	h.items = make([]Extension, len(exts))
	copy(h.items, exts)
	return nil
}

// HasExtensions reports whether any extension is attached
func (h *Holder) HasExtensions() bool {
	return len(h.items) > 0
}

// AddExtension appends ext
func (h *Holder) AddExtension(ext Extension) (bool, error) {
	if ext == nil {
		return false, coreerrors.NewInvalidArgument("extension")
	}
	h.items = append(h.items, ext)
	return true, nil
}

// RemoveExtension removes the first stored instance equal to ext
func (h *Holder) RemoveExtension(ext Extension) bool {
	if ext == nil {
		return false
	}
	for i, item := range h.items {
		if item == ext {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return true
		}
	}
	return false
}

// FindExtension returns the first extension satisfying match
func (h *Holder) FindExtension(match Predicate) (Extension, error) {
	if match == nil {
		return nil, coreerrors.NewInvalidArgument("predicate")
	}
	for _, item := range h.items {
		if match(item) {
			return item, nil
		}
	}
	return nil, nil
}

// ReplaceExtension swaps the first extension of the same kind for ext, or appends ext
// when none is attached
func (h *Holder) ReplaceExtension(ext Extension) error {
	if ext == nil {
		return coreerrors.NewInvalidArgument("extension")
	}
	for i, item := range h.items {
		if MatchByType(item, ext) {
			h.items[i] = ext
			return nil
		}
	}
	h.items = append(h.items, ext)
	return nil
}
