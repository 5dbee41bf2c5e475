package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML key -> position in the config file
	File    string            // empty when no file was found
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "framewm", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath reads path over the defaults and validates the result. A
// missing file yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	cfg := DefaultConfig()
	res := &LoadResult{Config: cfg, Sources: map[string]Source{}}

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		canon, err := canonicalPath(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(canon)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read: %w", canon, err)
		}

		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
		}
		if err := decodeStrictYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", canon, err)
		}
		res.Sources = collectSources(&doc, canon)
		res.File = canon
	}

	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, res.Sources)
	}
	return res, nil
}

// Source reports where the value at a top-level key came from.
func (r *LoadResult) Source(key string) Source {
	if src, ok := r.Sources[key]; ok {
		return src
	}
	return Source{Kind: SourceDefault}
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
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

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Best-effort; still use abs.
		return abs, nil
	}
	return real, nil
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

// collectSources records the position of every top-level value.
func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	if doc == nil {
		return out
	}
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		out[keyNode.Value] = Source{
			Kind:   SourceFile,
			File:   file,
			Line:   valNode.Line,
			Column: valNode.Column,
		}
	}
	return out
}

// attachSourceContext fills in file positions on every ValidationError
// inside err.
func attachSourceContext(err error, sources map[string]Source) error {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return annotate(err, sources)
	}
	for i, e := range merr.Errors {
		merr.Errors[i] = annotate(e, sources)
	}
	return merr
}

func annotate(err error, sources map[string]Source) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}
