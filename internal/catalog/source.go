package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"CryptoBuddy/internal/model"
)

// Source defines where catalog records come from.
type Source interface {
	Load() ([]model.Asset, error)
	Name() string
}

// Open loads records from src and validates them into a Catalog.
func Open(src Source) (*Catalog, error) {
	assets, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", src.Name(), err)
	}
	c, err := New(assets)
	if err != nil {
		return nil, fmt.Errorf("build %s catalog: %w", src.Name(), err)
	}
	return c, nil
}

// BuiltinSource serves the records compiled into the binary.
type BuiltinSource struct{}

func (BuiltinSource) Name() string { return "builtin" }

func (BuiltinSource) Load() ([]model.Asset, error) {
	out := make([]model.Asset, len(builtinAssets))
	copy(out, builtinAssets)
	return out, nil
}

// StaticSource serves a fixed slice, handy for tests and embedding.
type StaticSource struct {
	Assets []model.Asset
}

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Load() ([]model.Asset, error) { return s.Assets, nil }

// FileSource reads records from a YAML file with a top-level "assets" list.
type FileSource struct {
	Path string
}

type catalogFile struct {
	Assets []model.Asset `yaml:"assets"`
}

func (f FileSource) Name() string { return "file" }

func (f FileSource) Load() ([]model.Asset, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return doc.Assets, nil
}

// SourceFor picks the file source when path is set, the builtin one otherwise.
func SourceFor(path string) Source {
	if path != "" {
		return FileSource{Path: path}
	}
	return BuiltinSource{}
}
