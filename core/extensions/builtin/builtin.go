// ABOUTME: Registry of every extension kind shipped with the module
// ABOUTME: Returns a fresh registry per call so callers can extend it without shared state

package builtin

import (
	"syndication-kit/core/extensions"
	"syndication-kit/core/extensions/creativecommons"
	"syndication-kit/core/extensions/feedhistory"
	"syndication-kit/core/extensions/geo"
	"syndication-kit/core/extensions/pubcontrol"
	"syndication-kit/core/extensions/slash"
	"syndication-kit/core/extensions/syndication"
	"syndication-kit/core/extensions/threading"
	"syndication-kit/core/extensions/wfw"
)

// Registrations returns the built-in kinds in their default candidate order
func Registrations() []extensions.Registration {
	return []extensions.Registration{
		geo.Registration(),
		syndication.Registration(),
		pubcontrol.Registration(),
		slash.Registration(),
		wfw.Registration(),
		creativecommons.Registration(),
		feedhistory.Registration(),
		threading.Registration(),
	}
}

// Registry returns a new registry holding every built-in kind
func Registry() *extensions.Registry {
	r, err := extensions.NewRegistry(Registrations()...)
	if err != nil {
		// built-in registrations have distinct kinds and namespaces
		panic(err)
	}
	return r
}

// Settings returns load/save settings backed by a new built-in registry
func Settings() *extensions.Settings {
	return extensions.NewSettings(Registry())
}
