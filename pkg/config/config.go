// Package config implements a layered configuration resolver. A Config is
// built once from a flat (INI-style) or nested (YAML-style) file, optionally
// extended with appended fragments fetched from external locators, and then
// read through typed accessors keyed by section and dotted-path option name.
//
// Resolution is defensive and silent by default: missing options yield the
// caller's default, bad files yield an empty store, and failed decryptions
// yield nil. Callers distinguish "unset" from "empty" only by comparing
// against their own default sentinel.
package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/confkit/confkit/pkg/fetch"
	"github.com/confkit/confkit/pkg/logging"
	"github.com/confkit/confkit/pkg/registry"
)

const (
	// DefaultSectionName is the conventional name of the section whose
	// options serve as fallbacks in the flat format.
	DefaultSectionName = "DEFAULT"

	// DefaultAppendOption is the reserved default-section option listing
	// additional configuration locators to merge at construction time.
	DefaultAppendOption = "CONFIG_APPEND_LOCATOR_PATHS"

	// DefaultTokenOption is the option whose value names the environment
	// variable holding the secret decryption key.
	DefaultTokenOption = "CONFIG_SUPPORT_TOKEN"

	// fallbackConfigFile is used when a fallback environment variable was
	// requested but is unset.
	fallbackConfigFile = "setup.cfg"
)

// Config resolves configuration options from a single loaded snapshot.
// It is not safe for concurrent mutation; build it fully (including
// appends) before sharing for reads.
type Config struct {
	path           string
	format         Format
	defaultSection string
	mockRoot       string
	store          *store
	aliases        map[string]string
	fetcher        fetch.Fetcher
	helpers        *registry.Registry[HelperConstructor]
	log            zerolog.Logger
}

type settings struct {
	path           string
	defaultSection string
	fallbackEnv    string
	mockRoot       string
	format         Format
	cachePath      string
	useCache       bool
	appendOption   string
	importEnv      bool
	fetcher        fetch.Fetcher
	helpers        *registry.Registry[HelperConstructor]
}

// Option configures construction of a Config.
type Option func(*settings)

// WithConfigPath sets the primary configuration file path.
func WithConfigPath(path string) Option {
	return func(s *settings) { s.path = path }
}

// WithDefaultSection overrides the default section name.
func WithDefaultSection(name string) Option {
	return func(s *settings) { s.defaultSection = name }
}

// WithFallbackEnv names an environment variable consulted for the
// configuration path when none is given explicitly. When the variable is
// unset a literal default file name is used.
func WithFallbackEnv(name string) Option {
	return func(s *settings) { s.fallbackEnv = name }
}

// WithMockRoot sets a path prefix unconditionally prepended by GetPath,
// redirecting configured relative paths into a sandboxed tree.
func WithMockRoot(path string) Option {
	return func(s *settings) { s.mockRoot = path }
}

// WithFormat forces the configuration format instead of inferring it from
// the file extension.
func WithFormat(f Format) Option {
	return func(s *settings) { s.format = f }
}

// WithCachePath sets the top cache path for fetched configuration assets.
func WithCachePath(path string) Option {
	return func(s *settings) { s.cachePath = path }
}

// WithUseCache reuses previously cached configuration assets instead of
// fetching fresh copies.
func WithUseCache(use bool) Option {
	return func(s *settings) { s.useCache = use }
}

// WithAppendOption overrides the reserved option naming appendable
// configuration locators. An empty name disables append processing.
func WithAppendOption(name string) Option {
	return func(s *settings) { s.appendOption = name }
}

// WithImportEnvironment imports the process environment as default-section
// options for flat-format files. Environment keys are lowercased.
func WithImportEnvironment(enable bool) Option {
	return func(s *settings) { s.importEnv = enable }
}

// WithFetcher substitutes the collaborator used to fetch appended
// configuration assets.
func WithFetcher(f fetch.Fetcher) Option {
	return func(s *settings) { s.fetcher = f }
}

// WithHelpers supplies the registry of helper constructors consulted by
// GetHelper.
func WithHelpers(r *registry.Registry[HelperConstructor]) Option {
	return func(s *settings) { s.helpers = r }
}

// New builds a Config. The primary file is read through the format adapter;
// any appended fragments named by the reserved append option are then
// fetched and merged in order. A missing or unparsable primary file leaves
// an empty store; New never fails.
func New(opts ...Option) *Config {
	s := settings{
		defaultSection: DefaultSectionName,
		appendOption:   DefaultAppendOption,
	}
	for _, opt := range opts {
		opt(&s)
	}

	path := s.path
	if path == "" && s.fallbackEnv != "" {
		path = os.Getenv(s.fallbackEnv)
		if path == "" {
			path = fallbackConfigFile
		}
	}

	if s.cachePath == "" {
		if tmp, err := os.MkdirTemp("", "confkit-cache"); err == nil {
			s.cachePath = tmp
		}
	}
	if s.fetcher == nil {
		s.fetcher = fetch.New(afero.NewOsFs())
	}
	if s.helpers == nil {
		s.helpers = registry.New[HelperConstructor]()
	}

	format := s.format
	if format == FormatUnknown {
		format = PerceiveFormat(path, FormatINI)
	}

	c := &Config{
		path:           path,
		format:         format,
		defaultSection: s.defaultSection,
		mockRoot:       s.mockRoot,
		store:          newStore(),
		aliases:        map[string]string{"DEFAULT": s.defaultSection},
		fetcher:        s.fetcher,
		helpers:        s.helpers,
		log:            logging.GetLogger("config"),
	}

	if path != "" {
		c.store.merge(c.readFile(path, format, s.importEnv))
		c.ApplyAppends(s.appendOption, s.cachePath, s.useCache)
		if c.store.isEmpty() {
			c.log.Warn().Str("path", path).Str("format", string(format)).
				Msg("No configuration information imported")
		}
	}
	return c
}

// readFile parses a configuration file at the given format, degrading to an
// empty section mapping on any read or parse failure.
func (c *Config) readFile(path string, format Format, importEnv bool) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("Failed reading configuration file")
		return map[string]interface{}{}
	}

	switch format {
	case FormatYAML:
		m, perr := parseYAML(data)
		if perr != nil {
			c.log.Error().Err(perr).Str("path", path).Msg("Failed parsing YAML configuration file")
			return map[string]interface{}{}
		}
		return m
	default:
		return parseINI(data, c.defaultSection, importEnv)
	}
}

// ConfigPath returns the primary configuration file path.
func (c *Config) ConfigPath() string {
	return c.path
}

// MockRoot returns the configured mock path prefix, if any.
func (c *Config) MockRoot() string {
	return c.mockRoot
}

// ConfigFormat returns the store's format tag.
func (c *Config) ConfigFormat() Format {
	return c.format
}

// DefaultSectionName returns the configured default section name.
func (c *Config) DefaultSectionName() string {
	return c.defaultSection
}

// ReplaceSectionName installs a replacement section name that overrides the
// section used for subsequent lookup requests against org.
func (c *Config) ReplaceSectionName(org, replacement string) bool {
	if org == "" {
		return false
	}
	c.aliases[org] = replacement
	return true
}

// SectionNameReplacement returns the replacement for org, or org itself
// when no replacement is installed.
func (c *Config) SectionNameReplacement(org string) string {
	if repl, ok := c.aliases[org]; ok {
		return repl
	}
	return org
}

// Dump logs every section and option at info level.
func (c *Config) Dump() {
	for name := range c.store.sections {
		c.log.Info().Str("section", name).Msg("Configuration section")
		if sec, ok := c.store.section(name); ok {
			for opt, val := range sec {
				c.log.Info().Str("option", opt).Interface("value", val).Msg("Configuration option")
			}
		}
	}
}
