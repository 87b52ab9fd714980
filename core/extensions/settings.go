// ABOUTME: Settings shared by the load and save pipelines
// ABOUTME: Carries the registry, the supported extension set and output options

package extensions

import (
	"syndication-kit/core/interfaces"
)

// Settings controls how extensions are discovered on load and declared on save
type Settings struct {
	// Registry supplies constructors for extension namespaces. Required.
	Registry *Registry

	// SupportedExtensions restricts loading to these namespaces when AutoDetectExtensions
	// is off. On save it is the set of namespaces declared at the document root.
	SupportedExtensions *DescriptorSet

	// AutoDetectExtensions loads every registered namespace and, on save, walks the whole
	// host graph so the root declares every namespace actually used
	AutoDetectExtensions bool

	// MinimizeOutputSize disables indentation
	MinimizeOutputSize bool

	// Logger receives debug output about skipped namespaces. Optional.
	Logger interfaces.Logger
}

// NewSettings returns settings with auto-detection enabled and an empty supported set
func NewSettings(registry *Registry) *Settings {
	return &Settings{
		Registry:             registry,
		SupportedExtensions:  NewDescriptorSet(),
		AutoDetectExtensions: true,
	}
}

// Candidates returns the descriptors considered when loading
func (s *Settings) Candidates() []Descriptor {
	if s.AutoDetectExtensions || s.SupportedExtensions.Len() == 0 {
		return s.Registry.Descriptors()
	}
	return s.SupportedExtensions.Descriptors()
}

func (s *Settings) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}
