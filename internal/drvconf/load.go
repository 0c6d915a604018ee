package drvconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// NormalizeFormat maps user input and extensions onto a supported format.
// It returns "" for unknown formats.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimPrefix(f, ".")) {
	case "yaml", "yml":
		return FormatYAML
	case "toml":
		return FormatTOML
	case "json":
		return FormatJSON
	default:
		return ""
	}
}

// FormatFromPath guesses the document format from a file extension,
// defaulting to YAML.
func FormatFromPath(path string) string {
	if f := NormalizeFormat(filepath.Ext(path)); f != "" {
		return f
	}
	return FormatYAML
}

// Load reads, decodes and validates a drivers configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read drivers config: %w", err)
	}
	cfg, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a document without validating it.
func Decode(data []byte, format string) (*Config, error) {
	var cfg Config
	switch NormalizeFormat(format) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, ErrDecode(err.Error())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, ErrDecode(err.Error())
		}
	case FormatTOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, ErrDecode(err.Error())
		}
		// The TOML tree is funnelled through JSON so the polymorphic
		// peripheral and size fields share one decoder.
		buf, err := json.Marshal(tree.ToMap())
		if err != nil {
			return nil, ErrDecode(err.Error())
		}
		if err := json.Unmarshal(buf, &cfg); err != nil {
			return nil, ErrDecode(err.Error())
		}
	default:
		return nil, ErrDecode(fmt.Sprintf("unsupported format %q", format))
	}
	return &cfg, nil
}

// Encode renders a configuration in the requested format.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch NormalizeFormat(format) {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	case FormatTOML:
		// go-toml cannot marshal the custom field types directly; build a
		// generic tree from the YAML form instead.
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		var root map[string]any
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		tree, err := toml.TreeFromMap(dropNil(root).(map[string]any))
		if err != nil {
			return nil, err
		}
		s, err := tree.ToTomlString()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// dropNil removes null values, which TOML cannot represent.
func dropNil(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			out[k] = dropNil(e)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		tables := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			e = dropNil(e)
			out = append(out, e)
			if m, ok := e.(map[string]any); ok {
				tables = append(tables, m)
			}
		}
		// Arrays of tables must be typed for go-toml to emit [[...]] blocks.
		if len(tables) > 0 && len(tables) == len(out) {
			return tables
		}
		return out
	default:
		return v
	}
}
