package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceKind identifies where a config value came from.
type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source locates the file/line a config value was last set from.
type Source struct {
	Kind SourceKind
	File string
	Line int
}

// LoadResult carries the effective config plus per-field provenance, so
// callers can report which fields came from the file and which fell back
// to defaults.
type LoadResult struct {
	Config  *Config
	Sources map[string]Source
	File    string
}

// DefaultConfigPath returns ~/.config/penrose/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", defaultConfigRelPath), nil
}

// Load reads the merged configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads from the standard location and returns field
// provenance for introspection.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the config at path. A missing file is
// not an error: the defaults are returned as-is.
func LoadFromPath(path string) (*LoadResult, error) {
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, Sources: map[string]Source{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}

	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err != nil {
		return nil, attachSourceContext(err, path)
	}

	sources := collectSources(&doc, path)
	return &LoadResult{Config: cfg, Sources: sources, File: path}, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	if doc == nil {
		return out
	}
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	collectSourcesRec(node, file, "", out)
	return out
}

func collectSourcesRec(node *yaml.Node, file string, prefix string, out map[string]Source) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		path := keyNode.Value
		if prefix != "" {
			path = prefix + "." + path
		}
		out[path] = Source{Kind: SourceFile, File: file, Line: valNode.Line}
		collectSourcesRec(valNode, file, path, out)
	}
}

func attachSourceContext(err error, file string) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil {
		return err
	}
	verr.Source = Source{Kind: SourceFile, File: file}
	return verr
}
