package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/cadtext/cadtext/memory"
	"github.com/cadtext/cadtext/vnenc"
)

// Defaults.
const (
	DefaultSourceLang     = "auto"
	DefaultTargetLang     = "vi"
	DefaultMaxConcurrent  = 8
	DefaultMaxAttempts    = 5
	DefaultBaseDelay      = 2 * time.Second
	DefaultRequestTimeout = 60 * time.Second
)

// Environment variable names.
const (
	EnvSourceLang     = "CADTEXT_SOURCE_LANG"
	EnvTargetLang     = "CADTEXT_TARGET_LANG"
	EnvMaxConcurrent  = "CADTEXT_MAX_CONCURRENT"
	EnvMaxAttempts    = "CADTEXT_MAX_ATTEMPTS"
	EnvBaseDelay      = "CADTEXT_BASE_DELAY"
	EnvRequestTimeout = "CADTEXT_REQUEST_TIMEOUT"
	EnvEndpoint       = "CADTEXT_ENDPOINT"
	EnvProxy          = "CADTEXT_PROXY"
	EnvTerminology    = "CADTEXT_TERMINOLOGY"
	EnvMemory         = "CADTEXT_MEMORY"
	EnvCharset        = "CADTEXT_CHARSET"
)

// Settings is the effective configuration after defaults, .cadtext.yaml and
// the environment have been applied.
type Settings struct {
	SourceLang     string
	TargetLang     string
	MaxConcurrent  int
	MaxAttempts    int
	BaseDelay      time.Duration
	RequestTimeout time.Duration
	Endpoint       string
	Proxy          string
	Terminology    bool
	Glossaries     []string
	// MemoryPath is empty when the memory is disabled.
	MemoryPath     string
	SourceEncoding vnenc.Encoding
	TargetEncoding vnenc.Encoding
	Charset        string

	// File is the loaded .cadtext.yaml, nil when there is none.
	File *File
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	s := Settings{
		SourceLang:     DefaultSourceLang,
		TargetLang:     DefaultTargetLang,
		MaxConcurrent:  DefaultMaxConcurrent,
		MaxAttempts:    DefaultMaxAttempts,
		BaseDelay:      DefaultBaseDelay,
		RequestTimeout: DefaultRequestTimeout,
		Terminology:    true,
		SourceEncoding: vnenc.Auto,
		TargetEncoding: vnenc.Unicode,
		Charset:        vnenc.DefaultCharset,
	}
	if p, err := memory.DefaultPath(); err == nil {
		s.MemoryPath = p
	}
	return s
}

// Load builds the settings for a working directory: defaults, then
// .cadtext.yaml, then .env and the process environment.
func Load(rootDir string) (Settings, error) {
	s := Defaults()

	f, err := LoadFile(rootDir)
	if err != nil {
		return s, err
	}
	if f != nil {
		s.applyFile(rootDir, f)
	}

	if err := LoadEnv(rootDir); err != nil {
		return s, err
	}
	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyFile(rootDir string, f *File) {
	s.File = f
	s.SourceLang = f.SourceLang
	s.TargetLang = f.TargetLang
	if f.MaxConcurrent > 0 {
		s.MaxConcurrent = f.MaxConcurrent
	}
	if f.MaxAttempts > 0 {
		s.MaxAttempts = f.MaxAttempts
	}
	if f.BaseDelay > 0 {
		s.BaseDelay = f.BaseDelay
	}
	if f.RequestTimeout > 0 {
		s.RequestTimeout = f.RequestTimeout
	}
	if f.Endpoint != "" {
		s.Endpoint = f.Endpoint
	}
	if f.Proxy != "" {
		s.Proxy = f.Proxy
	}
	if f.Terminology != nil {
		s.Terminology = *f.Terminology
	}
	s.Glossaries = append(s.Glossaries, f.Glossaries...)

	// A project file keeps its own memory unless told otherwise.
	switch f.Memory {
	case "":
		s.MemoryPath = filepath.Join(rootDir, memory.FileName)
	case MemoryOff:
		s.MemoryPath = ""
	default:
		s.MemoryPath = f.Memory
	}

	if f.Encoding.Source != vnenc.Auto {
		s.SourceEncoding = f.Encoding.Source
	}
	if f.Encoding.Target != vnenc.Auto {
		s.TargetEncoding = f.Encoding.Target
	}
	if f.Encoding.Charset != "" {
		s.Charset = f.Encoding.Charset
	}
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// LoadEnv loads rootDir/.env into the process environment. Variables that
// are already set win; a missing .env is not an error.
func LoadEnv(rootDir string) error {
	path := filepath.Join(rootDir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv(EnvSourceLang); v != "" {
		if err := ValidateLang(v, true); err != nil {
			return fmt.Errorf("%s: %w", EnvSourceLang, err)
		}
		s.SourceLang = v
	}
	if v := os.Getenv(EnvTargetLang); v != "" {
		if err := ValidateLang(v, false); err != nil {
			return fmt.Errorf("%s: %w", EnvTargetLang, err)
		}
		s.TargetLang = v
	}
	if err := envInt(EnvMaxConcurrent, &s.MaxConcurrent); err != nil {
		return err
	}
	if err := envInt(EnvMaxAttempts, &s.MaxAttempts); err != nil {
		return err
	}
	if err := envDuration(EnvBaseDelay, &s.BaseDelay); err != nil {
		return err
	}
	if err := envDuration(EnvRequestTimeout, &s.RequestTimeout); err != nil {
		return err
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		s.Endpoint = v
	}
	if v := os.Getenv(EnvProxy); v != "" {
		s.Proxy = v
	}
	if v := os.Getenv(EnvTerminology); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTerminology, err)
		}
		s.Terminology = b
	}
	if v := os.Getenv(EnvMemory); v != "" {
		if v == MemoryOff {
			s.MemoryPath = ""
		} else {
			s.MemoryPath = v
		}
	}
	if v := os.Getenv(EnvCharset); v != "" {
		s.Charset = v
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s: expected a positive integer, got %q", name, v)
	}
	*dst = n
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s: expected a positive duration, got %q", name, v)
	}
	*dst = d
	return nil
}

// ---------------------------------------------------------------------------
// Language codes
// ---------------------------------------------------------------------------

// ValidateLang checks that code is a well-formed BCP 47 tag. "auto" is
// accepted only when allowAuto is set.
func ValidateLang(code string, allowAuto bool) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("empty language code")
	}
	if strings.EqualFold(code, "auto") {
		if allowAuto {
			return nil
		}
		return fmt.Errorf("%q is only valid as a source language", code)
	}
	if _, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}
