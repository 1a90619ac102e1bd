package network

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_network.yml
var defaultNetworkYAML []byte

// Default returns the built-in network.
func Default() (*Registry, error) {
	return LoadYAML(bytes.NewReader(defaultNetworkYAML))
}

// LoadYAML decodes and validates a network document.
func LoadYAML(r io.Reader) (*Registry, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return NewRegistry(doc)
}

// LoadFile reads a network document from path
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	reg, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
