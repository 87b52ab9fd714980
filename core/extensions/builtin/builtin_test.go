package builtin

import (
	"testing"

	"syndication-kit/core/extensions/geo"
	"syndication-kit/core/extensions/threading"
)

func TestRegistry(t *testing.T) {
	r := Registry()
	if r.Len() != len(Registrations()) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(Registrations()))
	}

	ext, ok := r.New(geo.Namespace)
	if !ok {
		t.Fatal("New(geo.Namespace) ok = false")
	}
	if _, isGeo := ext.(*geo.Extension); !isGeo {
		t.Errorf("New(geo.Namespace) = %T, want *geo.Extension", ext)
	}

	reg, ok := r.LookupKind(threading.Kind)
	if !ok || reg.Descriptor.Namespace() != threading.Namespace {
		t.Errorf("LookupKind(threading.Kind) = %v, %v", reg.Descriptor, ok)
	}
}

func TestRegistry_FreshInstances(t *testing.T) {
	a, b := Registry(), Registry()
	if a == b {
		t.Fatal("Registry() returned the same instance twice")
	}

	first, _ := a.New(geo.Namespace)
	second, _ := a.New(geo.Namespace)
	if first == second {
		t.Error("New() returned the same extension instance twice")
	}
}

func TestSettings(t *testing.T) {
	s := Settings()
	if !s.AutoDetectExtensions {
		t.Error("AutoDetectExtensions = false, want true")
	}
	if len(s.Candidates()) != len(Registrations()) {
		t.Errorf("len(Candidates()) = %d, want %d", len(s.Candidates()), len(Registrations()))
	}
}
