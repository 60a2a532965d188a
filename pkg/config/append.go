package config

import (
	"os"
	"path/filepath"
)

// ApplyAppends fetches and merges the configuration assets listed in the
// named append option. Each locator is cached under cachePath by its
// basename; with useCache an existing cache entry suppresses the fetch.
// Failures are logged per locator and do not abort the remaining locators:
// the result is true only when every locator fetched (or was validly
// cached) and merged. New calls this once during construction.
func (c *Config) ApplyAppends(appendOption, cachePath string, useCache bool) bool {
	if appendOption == "" {
		return true
	}

	locators := c.GetStringList(appendOption, InSection(c.defaultSection))
	if len(locators) == 0 {
		return true
	}

	cacheDir := filepath.Join(cachePath, "config")
	c.log.Debug().Strs("locators", locators).Str("cacheDir", cacheDir).
		Msg("Fetching appended configuration assets")

	ret := true
	for _, locator := range locators {
		dest := filepath.Join(cacheDir, c.fetcher.Basename(locator))
		fetched := true
		if !(useCache && c.fetcher.Exists(dest)) {
			if err := c.fetcher.Fetch(locator, dest); err != nil {
				c.log.Error().Err(err).Str("locator", locator).Msg("Failed fetching appended configuration")
				fetched = false
			}
		}
		ok := c.AppendConfig(dest, FormatUnknown)
		ret = ret && ok && fetched
	}

	if !ret {
		c.log.Error().Strs("locators", locators).Msg("Fetching appended sections failing")
	}
	return ret
}

// AppendConfig merges an additional configuration file into the store.
// FormatUnknown infers the format from the file extension, defaulting to
// the store's own format. A format that disagrees with the store's tag is
// rejected; a missing or unparsable file merges nothing but is not itself
// a failure.
func (c *Config) AppendConfig(path string, format Format) bool {
	if format == FormatUnknown {
		format = PerceiveFormat(path, c.format)
	}
	if format != c.format {
		c.log.Error().Str("path", path).Str("format", string(format)).Str("storeFormat", string(c.format)).
			Msg("Configuration format inconsistency")
		return false
	}

	c.store.merge(c.readFile(path, format, false))
	return true
}

// ImportConfig merges a section mapping directly into the store, replacing
// matching top-level sections.
func (c *Config) ImportConfig(sections map[string]interface{}) bool {
	if sections == nil {
		return false
	}
	c.store.merge(sections)
	return true
}

// ExportConfig returns a deep copy of the full configuration structure.
func (c *Config) ExportConfig() map[string]interface{} {
	return c.store.exportAll()
}

// ExportSection returns a deep copy of one section; ok is false when the
// section does not exist.
func (c *Config) ExportSection(name string) (map[string]interface{}, bool) {
	return c.store.exportSection(name)
}

// WriteConfig serializes the current configuration to a file in the
// selected format; FormatUnknown writes the store's own format.
func (c *Config) WriteConfig(path string, format Format) bool {
	if format == FormatUnknown {
		format = c.format
	}

	var data []byte
	switch format {
	case FormatYAML:
		out, err := serializeYAML(c.store.sections)
		if err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("Failed serializing YAML configuration")
			return false
		}
		data = out
	case FormatINI:
		data = serializeINI(c.store.sections, c.defaultSection, ",")
	default:
		c.log.Error().Str("format", string(format)).Msg("Unsupported configuration format")
		return false
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("Failed writing configuration file")
		return false
	}
	return true
}
