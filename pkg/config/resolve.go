package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// qualifiedPrefixes mark values that are already absolute or remote; GetPath
// returns such values unmodified.
var qualifiedPrefixes = []string{"/", "http://", "https://", "ftp://", "file://"}

type getOpts struct {
	section       string
	def           interface{}
	token         string
	delimiter     string
	prefixName    string
	prefixSection string
}

// GetOption adjusts a single accessor call.
type GetOption func(*getOpts)

// InSection scopes the lookup to the named section instead of the default
// section.
func InSection(name string) GetOption {
	return func(o *getOpts) { o.section = name }
}

// WithDefault supplies the value returned when the option cannot be
// resolved.
func WithDefault(v interface{}) GetOption {
	return func(o *getOpts) { o.def = v }
}

// WithToken overrides the option naming the environment variable that holds
// the secret decryption key.
func WithToken(optionName string) GetOption {
	return func(o *getOpts) { o.token = optionName }
}

// WithDelimiter overrides the delimiter GetList uses to split scalar
// values.
func WithDelimiter(d string) GetOption {
	return func(o *getOpts) { o.delimiter = d }
}

// WithPrefix names an option whose value is joined ahead of the path
// resolved by GetPath.
func WithPrefix(optionName string) GetOption {
	return func(o *getOpts) { o.prefixName = optionName }
}

// WithPrefixSection scopes the prefix option of GetPath to the named
// section instead of the default section.
func WithPrefixSection(name string) GetOption {
	return func(o *getOpts) { o.prefixSection = name }
}

func (c *Config) getOptions(opts []GetOption) getOpts {
	o := getOpts{
		token:     DefaultTokenOption,
		delimiter: ",",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.section == "" {
		o.section = c.defaultSection
	}
	return o
}

// Get resolves a configuration option. Dotted names descend into nested
// mappings. Option names beginning with an underscore are treated as
// encrypted secrets; when the prefixed lookup fails the unqualified name is
// used as a fallback, and the fallback value is returned verbatim. A value
// that cannot be resolved yields the caller's default.
func (c *Config) Get(name string, opts ...GetOption) interface{} {
	o := c.getOptions(opts)

	section := c.SectionNameReplacement(o.section)
	if c.optionExists(section, name) {
		return c.fetchValue(name, o)
	}
	if strings.HasPrefix(name, "_") {
		return c.fetchValue(name[1:], o)
	}
	c.log.Debug().Str("option", name).Str("section", section).
		Msg("Missing config option assigned default value")
	return o.def
}

// optionExists probes for an option without fetching it: a direct
// membership test for plain names, dotted descent for nested names. Dotted
// names are also tried as literal keys so flat stores degrade gracefully.
func (c *Config) optionExists(section, name string) bool {
	sec, ok := c.store.section(section)
	if !ok {
		return false
	}
	if _, ok := sec[name]; ok {
		return true
	}
	if strings.Contains(name, ".") {
		return keyExists(sec, name)
	}
	return false
}

// fetchValue retrieves an option the existence probe approved, applying
// flat-format string coercion and the secret trigger, and returning a deep
// copy so composite values cannot alias the store.
func (c *Config) fetchValue(name string, o getOpts) interface{} {
	section := c.SectionNameReplacement(o.section)
	sec, ok := c.store.section(section)
	if !ok {
		return o.def
	}

	val, found := sec[name]
	if !found && strings.Contains(name, ".") {
		val, found = keyValue(sec, name)
	}
	if !found {
		return o.def
	}

	if c.format == FormatINI {
		if _, isStr := val.(string); !isStr {
			val = fmt.Sprint(val)
		}
	}

	if strings.HasPrefix(name, "_") {
		if s, isStr := val.(string); isStr {
			return c.unwrapSecret(name, s, o.section, o.token)
		}
	}
	return deepCopy(val)
}

// keyExists walks a dotted key through nested mappings.
func keyExists(m map[string]interface{}, dotted string) bool {
	_, ok := keyValue(m, dotted)
	return ok
}

// keyValue walks a dotted key through nested mappings and returns the
// terminal value. Any missing key or non-mapping intermediate means not
// found.
func keyValue(m map[string]interface{}, dotted string) (interface{}, bool) {
	var cur interface{} = m
	for _, key := range strings.Split(dotted, ".") {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetPath resolves a filesystem path option. Values that are already
// qualified (absolute paths and URLs) are returned unmodified. Otherwise an
// optional prefix option is resolved and the result is assembled as
// join(mockRoot?, prefix?, value), which is how a mock filesystem root
// redirects configured repository paths without changing option values.
func (c *Config) GetPath(name string, opts ...GetOption) string {
	o := c.getOptions(opts)

	val, ok := c.Get(name, InSection(o.section), WithDefault(o.def)).(string)
	if !ok {
		return ""
	}
	for _, prefix := range qualifiedPrefixes {
		if strings.HasPrefix(val, prefix) {
			return val
		}
	}

	prefixPath := ""
	if o.prefixName != "" {
		prefixSection := o.prefixSection
		if prefixSection == "" {
			prefixSection = c.defaultSection
		}
		prefixPath, _ = c.Get(o.prefixName, InSection(prefixSection)).(string)
	}

	parts := make([]string, 0, 3)
	if c.mockRoot != "" {
		parts = append(parts, c.mockRoot)
	}
	if prefixPath != "" {
		parts = append(parts, prefixPath)
	}
	parts = append(parts, val)
	return filepath.Join(parts...)
}

// GetList resolves an option as a list. Sequence values are returned
// unchanged; scalar values are split on the delimiter. An absent or empty
// value yields the caller's default, or an empty list.
func (c *Config) GetList(name string, opts ...GetOption) []interface{} {
	o := c.getOptions(opts)

	fallback := []interface{}{}
	if d, ok := o.def.([]interface{}); ok {
		fallback = d
	}

	val := c.Get(name, InSection(o.section), WithDefault(o.def))
	switch v := val.(type) {
	case nil:
		return fallback
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out
	default:
		s := fmt.Sprint(v)
		if s == "" {
			return fallback
		}
		parts := strings.Split(s, o.delimiter)
		out := make([]interface{}, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out
	}
}

// GetStringList is GetList with each element coerced to a string.
func (c *Config) GetStringList(name string, opts ...GetOption) []string {
	items := c.GetList(name, opts...)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprint(item)
	}
	return out
}

// GetEnvValue resolves an option whose value names an environment variable
// and returns that variable's value. This is a double indirection: the
// option's value is not the answer, it is the name of where the answer
// lives. The default is returned when either the option or the variable is
// unset.
func (c *Config) GetEnvValue(name string, opts ...GetOption) string {
	o := c.getOptions(opts)

	def := ""
	if o.def != nil {
		def = fmt.Sprint(o.def)
	}

	varName, ok := c.Get(name, InSection(o.section)).(string)
	if !ok || varName == "" {
		return def
	}
	if val, found := os.LookupEnv(varName); found {
		return val
	}
	return def
}
