package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// maxInterpolationDepth bounds recursive %(name)s expansion.
const maxInterpolationDepth = 10

var interpolationRe = regexp.MustCompile(`%\(([^)]+)\)s`)

// parseINI reads the flat format: [section] headers with key=value or
// key: value options. Option names keep their case verbatim. When importEnv
// is set, every process environment variable becomes a default-section
// option with its name folded to lowercase; explicit file options always
// win over environment-sourced ones. After parsing, default-section options
// are materialized into every other section where not locally overridden,
// and %(name)s references are expanded against the owning section.
func parseINI(data []byte, defaultSection string, importEnv bool) map[string]interface{} {
	raw := map[string]map[string]string{
		defaultSection: {},
	}

	current := defaultSection
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.TrimSpace(line[1 : len(line)-1])
			if _, ok := raw[current]; !ok {
				raw[current] = map[string]string{}
			}
			continue
		}
		key, val, ok := splitOption(line)
		if !ok {
			// Permissive by design: malformed lines are dropped, not fatal.
			continue
		}
		raw[current][key] = val
	}

	if importEnv {
		// Environment-sourced keys are lowercased; file keys keep case.
		for _, kv := range os.Environ() {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				continue
			}
			name := strings.ToLower(parts[0])
			if _, ok := raw[defaultSection][name]; !ok {
				raw[defaultSection][name] = parts[1]
			}
		}
	}

	// Flat-format inheritance: default options are visible in every section
	// unless locally overridden.
	defaults := raw[defaultSection]
	for name, section := range raw {
		if name == defaultSection {
			continue
		}
		for k, v := range defaults {
			if _, ok := section[k]; !ok {
				section[k] = v
			}
		}
	}

	out := make(map[string]interface{}, len(raw))
	for name, section := range raw {
		m := make(map[string]interface{}, len(section))
		for k, v := range section {
			m[k] = expandValue(v, section, 0)
		}
		out[name] = m
	}
	return out
}

// splitOption splits a line on the first '=' or ':' delimiter.
func splitOption(line string) (key, val string, ok bool) {
	eq := strings.IndexByte(line, '=')
	co := strings.IndexByte(line, ':')
	sep := eq
	if sep < 0 || (co >= 0 && co < sep) {
		sep = co
	}
	if sep < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:sep]), strings.TrimSpace(line[sep+1:]), true
}

// expandValue resolves %(name)s references against the owning section
// (which already includes the materialized defaults). Unresolvable
// references are left verbatim and %% escapes to a literal percent.
func expandValue(val string, section map[string]string, depth int) string {
	if depth >= maxInterpolationDepth || !strings.Contains(val, "%") {
		return val
	}
	out := interpolationRe.ReplaceAllStringFunc(val, func(m string) string {
		key := m[2 : len(m)-2]
		if v, ok := section[key]; ok {
			return expandValue(v, section, depth+1)
		}
		return m
	})
	return strings.ReplaceAll(out, "%%", "%")
}

// serializeINI writes the flat format: the default section first, remaining
// sections in sorted order. Sequence values are joined with the delimiter;
// nested mapping values cannot be represented and are skipped.
func serializeINI(sections map[string]interface{}, defaultSection, delimiter string) []byte {
	var buf bytes.Buffer

	names := make([]string, 0, len(sections))
	for name := range sections {
		if name != defaultSection {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := sections[defaultSection]; ok {
		names = append([]string{defaultSection}, names...)
	}

	for _, name := range names {
		fmt.Fprintf(&buf, "[%s]\n", name)
		section, ok := sections[name].(map[string]interface{})
		if !ok {
			buf.WriteByte('\n')
			continue
		}
		keys := make([]string, 0, len(section))
		for k := range section {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v := section[k].(type) {
			case map[string]interface{}:
				continue
			case []interface{}:
				parts := make([]string, len(v))
				for i, e := range v {
					parts[i] = fmt.Sprint(e)
				}
				fmt.Fprintf(&buf, "%s=%s\n", k, strings.Join(parts, delimiter))
			default:
				fmt.Fprintf(&buf, "%s=%v\n", k, v)
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
