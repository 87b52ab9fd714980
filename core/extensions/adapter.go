// ABOUTME: Adapter runs the extension half of the load pipeline for one host element
// ABOUTME: Save-side helpers collect the namespaces in use and write attached extensions in stored order

package extensions

import (
	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// Adapter binds a host element node to the settings used to load its extensions.
// An adapter holds no state between calls; create one per node.
type Adapter struct {
	node     *xmlquery.Node
	settings *Settings
}

// NewAdapter creates an adapter for node
func NewAdapter(node *xmlquery.Node, settings *Settings) (*Adapter, error) {
	if node == nil {
		return nil, coreerrors.NewInvalidArgument("node")
	}
	if settings == nil {
		return nil, coreerrors.NewInvalidArgument("settings")
	}
	if settings.Registry == nil {
		return nil, coreerrors.NewInvalidArgument("settings.Registry")
	}
	return &Adapter{node: node, settings: settings}, nil
}

// Fill loads every supported extension found on the adapter's node and appends it to host
// in document order. Namespaces that are not supported, not registered or owned by the
// host element itself are skipped without error.
func (a *Adapter) Fill(host Host) error {
	if host == nil {
		return coreerrors.NewInvalidArgument("host")
	}

	supported := make(map[string]bool)
	for _, d := range SupportedNamespaces(a.node, a.settings.Candidates()) {
		supported[d.Namespace()] = true
	}

	handled := map[string]bool{
		"":                  true,
		a.node.NamespaceURI: true,
	}

	for _, ns := range a.extensionNamespaces() {
		if handled[ns] {
			continue
		}
		handled[ns] = true

		if !supported[ns] {
			a.settings.debug("Skipping unsupported extension namespace", map[string]interface{}{
				"namespace": ns,
				"element":   a.node.Data,
			})
			continue
		}

		ext, ok := a.settings.Registry.New(ns)
		if !ok {
			a.settings.debug("No extension registered for namespace", map[string]interface{}{
				"namespace": ns,
				"element":   a.node.Data,
			})
			continue
		}

		loaded, err := ext.Load(a.node)
		if err != nil {
			return coreerrors.WrapError(err, "load extension "+ns)
		}
		if !loaded {
			a.settings.debug("Extension namespace present but no fields loaded", map[string]interface{}{
				"namespace": ns,
				"element":   a.node.Data,
			})
			continue
		}

		if _, err := host.AddExtension(ext); err != nil {
			return err
		}
	}
	return nil
}

// extensionNamespaces lists the namespaces of the node's attributes followed by those of
// its child elements, in document order. Repeats are left for the caller to skip.
func (a *Adapter) extensionNamespaces() []string {
	var namespaces []string
	for _, attr := range a.node.Attr {
		if xmlnav.IsNamespaceDeclaration(attr) {
			continue
		}
		namespaces = append(namespaces, attr.NamespaceURI)
	}
	for _, child := range xmlnav.ChildElements(a.node) {
		namespaces = append(namespaces, child.NamespaceURI)
	}
	return namespaces
}

// FillExtensionTypes adds the descriptor of every extension attached to host to supported
func FillExtensionTypes(host Host, supported *DescriptorSet) error {
	if host == nil {
		return coreerrors.NewInvalidArgument("host")
	}
	if supported == nil {
		return coreerrors.NewInvalidArgument("supported")
	}
	for _, ext := range host.Extensions() {
		supported.Add(ext.Descriptor())
	}
	return nil
}

// CollectExtensionTypes runs FillExtensionTypes over root and every host reachable from it
func CollectExtensionTypes(root Host, supported *DescriptorSet) error {
	if err := FillExtensionTypes(root, supported); err != nil {
		return err
	}
	composite, ok := root.(Composite)
	if !ok {
		return nil
	}
	for _, child := range composite.ExtensibleChildren() {
		if child == nil {
			continue
		}
		if err := CollectExtensionTypes(child, supported); err != nil {
			return err
		}
	}
	return nil
}

// RootNamespaces returns the descriptors to declare on the document root: the supported
// set, plus every extension type attached anywhere under root when auto-detection is on.
// settings.SupportedExtensions itself is not modified.
func RootNamespaces(root Host, settings *Settings) ([]Descriptor, error) {
	if settings == nil {
		return nil, coreerrors.NewInvalidArgument("settings")
	}
	set := NewDescriptorSet(settings.SupportedExtensions.Descriptors()...)
	if settings.AutoDetectExtensions {
		if err := CollectExtensionTypes(root, set); err != nil {
			return nil, err
		}
	}
	return set.Descriptors(), nil
}

// WriteExtensionsTo writes exts in the order given
func WriteExtensionsTo(exts []Extension, w *xmlwriter.Writer) error {
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}
	for _, ext := range exts {
		if ext == nil {
			continue
		}
		if err := ext.WriteTo(w); err != nil {
			return coreerrors.WrapError(err, "write extension "+ext.Descriptor().Namespace())
		}
	}
	return nil
}
