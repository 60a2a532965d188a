package config

// store holds the merged configuration: section name -> section content.
// Flat sections are maps of string values; nested sections may hold maps,
// sequences, and typed scalars. The store is not thread-safe; the design
// assumes one store per snapshot, built once and read many times.
type store struct {
	sections map[string]interface{}
}

func newStore() *store {
	return &store{sections: make(map[string]interface{})}
}

// merge performs a shallow union at the section-key level: whole sections
// in src replace or extend matching top-level keys. Option values inside a
// section are never deep-merged.
func (s *store) merge(src map[string]interface{}) {
	for name, section := range src {
		s.sections[name] = section
	}
}

// section returns the named section as a mapping.
func (s *store) section(name string) (map[string]interface{}, bool) {
	sec, ok := s.sections[name]
	if !ok {
		return nil, false
	}
	m, ok := sec.(map[string]interface{})
	return m, ok
}

// exportAll returns a deep copy of the full structure.
func (s *store) exportAll() map[string]interface{} {
	out := deepCopy(s.sections)
	return out.(map[string]interface{})
}

// exportSection returns a deep copy of one section, or false when the
// section does not exist.
func (s *store) exportSection(name string) (map[string]interface{}, bool) {
	sec, ok := s.section(name)
	if !ok {
		return nil, false
	}
	return deepCopy(sec).(map[string]interface{}), true
}

func (s *store) isEmpty() bool {
	return len(s.sections) == 0
}

// deepCopy copies the closed recursion of maps, slices, and scalars that
// parsed configuration is made of. Scalars are returned as-is.
func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
