package countries

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var bundledData []byte

var bundled = sync.OnceValues(func() (*Directory, error) {
	return LoadBundled()
})

// Parse decodes a YAML dataset (a list of {cca2, name, callingCodes,
// translations} mappings). JSON input is accepted as well.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return records, nil
}

// LoadBundled builds a new directory from the embedded dataset.
func LoadBundled(opts ...Option) (*Directory, error) {
	records, err := Parse(bundledData)
	if err != nil {
		return nil, err
	}
	return New(records, opts...)
}

// LoadFile builds a directory from an external dataset file.
func LoadFile(path string, opts ...Option) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d, err := New(records, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// MustBundled returns the process-wide directory built from the embedded
// dataset without derived translations. It panics if the embedded data is
// invalid, which the package tests rule out.
func MustBundled() *Directory {
	d, err := bundled()
	if err != nil {
		panic(err)
	}
	return d
}
