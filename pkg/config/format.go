package config

import (
	"path/filepath"
	"strings"
)

// Format identifies the on-disk shape of a configuration file. A store
// carries exactly one format for its lifetime; the only way to change shape
// is an explicit WriteConfig to the other format.
type Format string

const (
	// FormatINI is the flat, section-delimited key=value format.
	FormatINI Format = "ini"

	// FormatYAML is the nested mapping format.
	FormatYAML Format = "yaml"

	// FormatUnknown requests extension-based inference.
	FormatUnknown Format = ""
)

// PerceiveFormat infers a format from the file extension, falling back to
// the supplied default for unrecognized extensions.
func PerceiveFormat(path string, fallback Format) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return FormatYAML
	case "ini":
		return FormatINI
	default:
		return fallback
	}
}
