package config

// HelperConstructor builds a collaborator object from keyword-style
// arguments. Embedding applications register constructors under the keys
// their configuration refers to; the resolver never performs any
// reflection-based loading.
type HelperConstructor func(args map[string]interface{}) (interface{}, error)

// RegisterHelper registers a constructor under key for GetHelper lookups.
func (c *Config) RegisterHelper(key string, ctor HelperConstructor) error {
	return c.helpers.Register(key, ctor)
}

// GetHelper resolves an option to a registry key and constructs the
// registered helper with the given arguments. Failures are logged and yield
// nil, consistent with the resolver's permissive philosophy.
func (c *Config) GetHelper(name string, args map[string]interface{}, opts ...GetOption) interface{} {
	key, ok := c.Get(name, opts...).(string)
	if !ok || key == "" {
		c.log.Error().Str("option", name).Msg("Missing helper configuration option")
		return nil
	}

	ctor, err := c.helpers.Lookup(key)
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("No registered helper for configuration key")
		return nil
	}

	helper, err := ctor(args)
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("Failed constructing helper")
		return nil
	}
	return helper
}
