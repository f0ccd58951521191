package format

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// descriptorFile is the on-disk shape of a user-supplied format file.
type descriptorFile struct {
	Formats []Descriptor `yaml:"formats"`
}

// LoadFile reads additional format descriptors from a YAML file, so users can
// describe a bank layout without a code change.
func LoadFile(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read format file: %w", err)
	}

	var file descriptorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse format file %s: %w", path, err)
	}

	for i := range file.Formats {
		d := &file.Formats[i]
		if d.ID == "" {
			return nil, fmt.Errorf("format %d in %s has no id", i, path)
		}
		if d.Bank == "" {
			d.Bank = BankGeneric
		}
		if d.DateStyle == "" {
			d.DateStyle = DateDMY
		}
		if len(d.Columns) == 0 {
			return nil, fmt.Errorf("format %q in %s declares no columns", d.ID, path)
		}
	}

	return file.Formats, nil
}

// RegistryWithFile combines the built-in descriptors with a user format file.
// An empty path returns the default registry unchanged.
func RegistryWithFile(path string) (*Registry, error) {
	descriptors := BuiltinDescriptors()
	if path != "" {
		extra, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, extra...)
	}
	return NewRegistry(descriptors...)
}
