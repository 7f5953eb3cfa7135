package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidKeys returns every settable key, sorted.
func ValidKeys() []string {
	keys := make([]string, 0, len(defaults()))
	for k := range defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateKey accepts both underscore and hyphen spellings.
func ValidateKey(key string) error {
	if _, ok := defaults()[NormalizeKey(key)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// ParseValue converts a command-line string into the typed value stored for key.
func ParseValue(key, value string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	switch k := NormalizeKey(key); k {
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", k, value)
		}
		return b, nil
	case "port":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("%s: expected a port between 1 and 65535, got %q", k, value)
		}
		return n, nil
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: expected a positive integer, got %q", k, value)
		}
		return n, nil
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s: expected a positive duration such as 30s, got %q", k, value)
		}
		return d.String(), nil
	case "output":
		if !oneOf(value, outputFormats) {
			return nil, fmt.Errorf("%s: must be one of %v, got %q", k, outputFormats, value)
		}
		return value, nil
	case "log_format":
		if !oneOf(value, logFormats) {
			return nil, fmt.Errorf("%s: must be one of %v, got %q", k, logFormats, value)
		}
		return value, nil
	case "subdomain_source":
		if !oneOf(value, subdomainSources) {
			return nil, fmt.Errorf("%s: must be one of %v, got %q", k, subdomainSources, value)
		}
		return value, nil
	default:
		return value, nil
	}
}

// Set writes key=value into the YAML file at path, keeping the other keys.
// The file and its directory are created if missing.
func Set(path, key, value string) error {
	parsed, err := ParseValue(key, value)
	if err != nil {
		return err
	}

	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	doc[NormalizeKey(key)] = parsed

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
