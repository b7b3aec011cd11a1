package metadata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a manifest from path. Both YAML and JSON manifests are
// accepted.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode parses and validates a manifest document.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	for i := range m.Types {
		if err := normalizeType(&m.Types[i], ""); err != nil {
			return nil, err
		}
	}

	return &m, nil
}

// normalizeType validates t and fills in defaults: a missing kind means
// class and generic parameter positions follow declaration order.
func normalizeType(t *TypeDescriptor, owner string) error {
	if t.Name == "" {
		if owner != "" {
			return fmt.Errorf("nested type of %s has no name", owner)
		}
		return fmt.Errorf("type has no name")
	}
	if t.Kind == "" {
		t.Kind = KindClass
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("type %s: unknown kind %q", t.Name, t.Kind)
	}

	for i := range t.GenericParams {
		t.GenericParams[i].Position = i
	}
	for i := range t.Methods {
		m := &t.Methods[i]
		if m.Name == "" {
			return fmt.Errorf("type %s: method %d has no name", t.Name, i)
		}
		for j := range m.GenericParams {
			m.GenericParams[j].Position = j
		}
		if m.Returns.Name == "" && m.Returns.Param == nil {
			m.Returns = Named("System.Void")
		}
	}

	for i := range t.Nested {
		if err := normalizeType(&t.Nested[i], t.Name); err != nil {
			return err
		}
	}
	return nil
}
