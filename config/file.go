// Package config loads cadtext settings from .cadtext.yaml, .env and the environment.
//
// When a .cadtext.yaml file exists in the working directory, its values
// replace the built-in defaults. Environment variables (CADTEXT_*, optionally
// loaded from a .env file) override the file, and command-line flags override
// both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cadtext/cadtext/vnenc"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .cadtext.yaml structure.
type File struct {
	// SourceLang is the source language code (default "auto").
	SourceLang string `yaml:"source_lang,omitempty"`
	// TargetLang is the target language code (default "vi").
	TargetLang string `yaml:"target_lang,omitempty"`

	// --- network ---

	// MaxConcurrent caps the requests in flight (default 8).
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
	// MaxAttempts caps the attempts per request (default 5).
	MaxAttempts int `yaml:"max_attempts,omitempty"`
	// BaseDelay is the first backoff delay, e.g. "2s".
	BaseDelay time.Duration `yaml:"base_delay,omitempty"`
	// RequestTimeout bounds a single HTTP request, e.g. "60s".
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	// Endpoint overrides the translation endpoint URL.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Proxy is an HTTP proxy URL; empty uses the environment.
	Proxy string `yaml:"proxy,omitempty"`

	// --- terminology ---

	// Terminology enables the glossary pre-pass (default true).
	Terminology *bool `yaml:"terminology,omitempty"`
	// Glossaries are user glossary files (.yaml or .toml) relative to the file.
	Glossaries []string `yaml:"glossaries,omitempty"`

	// Memory is the translation memory path relative to the file.
	// "off" disables the memory.
	Memory string `yaml:"memory,omitempty"`

	// Encoding holds the defaults of the convert command.
	Encoding EncodingSection `yaml:"encoding,omitempty"`
}

// EncodingSection configures encoding conversion.
type EncodingSection struct {
	Source  vnenc.Encoding `yaml:"source,omitempty"`
	Target  vnenc.Encoding `yaml:"target,omitempty"`
	Charset string         `yaml:"charset,omitempty"`
}

// MemoryOff disables the translation memory.
const MemoryOff = "off"

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".cadtext.yaml"

// LoadFile loads and validates .cadtext.yaml from the given directory.
// Returns nil if no .cadtext.yaml exists.
func LoadFile(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Defaults
	if f.SourceLang == "" {
		f.SourceLang = DefaultSourceLang
	}
	if f.TargetLang == "" {
		f.TargetLang = DefaultTargetLang
	}

	// Validate
	if err := ValidateLang(f.SourceLang, true); err != nil {
		return nil, fmt.Errorf("%s: source_lang: %w", path, err)
	}
	if err := ValidateLang(f.TargetLang, false); err != nil {
		return nil, fmt.Errorf("%s: target_lang: %w", path, err)
	}
	if f.MaxConcurrent < 0 {
		return nil, fmt.Errorf("%s: max_concurrent must not be negative", path)
	}
	if f.MaxAttempts < 0 {
		return nil, fmt.Errorf("%s: max_attempts must not be negative", path)
	}
	if f.BaseDelay < 0 || f.RequestTimeout < 0 {
		return nil, fmt.Errorf("%s: delays must not be negative", path)
	}
	// Resolve paths relative to the file
	for i, g := range f.Glossaries {
		f.Glossaries[i] = resolvePath(rootDir, g)
	}
	if f.Memory != "" && f.Memory != MemoryOff {
		f.Memory = resolvePath(rootDir, f.Memory)
	}

	return &f, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
