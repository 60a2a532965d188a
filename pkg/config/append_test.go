package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkit/confkit/pkg/testutil"
)

const appendPrimaryYAML = `---
DEFAULT:
    CONFIG_APPEND_LOCATOR_PATHS:
        - https://configs.example.org/site-a.yml
        - https://configs.example.org/site-b.yml
        - https://configs.example.org/site-c.yml
Base:
    PROJ_NAME: BaseProject
`

// newAppendConfig builds a Config with appending disabled so the test can
// drive ApplyAppends explicitly and observe its result.
func newAppendConfig(t *testing.T, sf *testutil.ScriptedFetcher) *Config {
	t.Helper()
	path := testutil.WriteConfigFile(t, t.TempDir(), "setup-example.yml", appendPrimaryYAML)
	return New(WithConfigPath(path), WithFetcher(sf), WithAppendOption(""))
}

func sectionYAML(section, option, value string) []byte {
	return []byte("---\n" + section + ":\n    " + option + ": " + value + "\n")
}

func TestApplyAppendsMergesAllLocators(t *testing.T) {
	sf := testutil.NewScriptedFetcher()
	sf.Files["https://configs.example.org/site-a.yml"] = sectionYAML("SiteA", "HOST", "a.example.org")
	sf.Files["https://configs.example.org/site-b.yml"] = sectionYAML("SiteB", "HOST", "b.example.org")
	sf.Files["https://configs.example.org/site-c.yml"] = sectionYAML("SiteC", "HOST", "c.example.org")
	cfg := newAppendConfig(t, sf)

	ok := cfg.ApplyAppends(DefaultAppendOption, t.TempDir(), false)
	require.True(t, ok)

	assert.Equal(t, "a.example.org", cfg.Get("HOST", InSection("SiteA")))
	assert.Equal(t, "b.example.org", cfg.Get("HOST", InSection("SiteB")))
	assert.Equal(t, "c.example.org", cfg.Get("HOST", InSection("SiteC")))
	assert.Equal(t, "BaseProject", cfg.Get("PROJ_NAME", InSection("Base")))
}

func TestApplyAppendsFailSoft(t *testing.T) {
	sf := testutil.NewScriptedFetcher()
	sf.Files["https://configs.example.org/site-a.yml"] = sectionYAML("SiteA", "HOST", "a.example.org")
	sf.FailOn["https://configs.example.org/site-b.yml"] = true
	sf.Files["https://configs.example.org/site-c.yml"] = sectionYAML("SiteC", "HOST", "c.example.org")
	cfg := newAppendConfig(t, sf)

	ok := cfg.ApplyAppends(DefaultAppendOption, t.TempDir(), false)
	assert.False(t, ok)

	// The failing locator does not abort the rest.
	assert.Equal(t, "a.example.org", cfg.Get("HOST", InSection("SiteA")))
	assert.Nil(t, cfg.Get("HOST", InSection("SiteB")))
	assert.Equal(t, "c.example.org", cfg.Get("HOST", InSection("SiteC")))
}

func TestApplyAppendsUsesCache(t *testing.T) {
	cachePath := t.TempDir()
	cacheDir := filepath.Join(cachePath, "config")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "site-a.yml"),
		sectionYAML("SiteA", "HOST", "cached.example.org"), 0644))

	sf := testutil.NewScriptedFetcher()
	sf.Files["https://configs.example.org/site-b.yml"] = sectionYAML("SiteB", "HOST", "b.example.org")
	sf.Files["https://configs.example.org/site-c.yml"] = sectionYAML("SiteC", "HOST", "c.example.org")
	cfg := newAppendConfig(t, sf)

	ok := cfg.ApplyAppends(DefaultAppendOption, cachePath, true)
	require.True(t, ok)

	// The cached asset is merged without a fetch.
	assert.Equal(t, "cached.example.org", cfg.Get("HOST", InSection("SiteA")))
	assert.NotContains(t, sf.Fetched, "https://configs.example.org/site-a.yml")
	assert.Contains(t, sf.Fetched, "https://configs.example.org/site-b.yml")
}

func TestApplyAppendsRefetchesWithoutCache(t *testing.T) {
	cachePath := t.TempDir()
	cacheDir := filepath.Join(cachePath, "config")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "site-a.yml"),
		sectionYAML("SiteA", "HOST", "stale.example.org"), 0644))

	sf := testutil.NewScriptedFetcher()
	sf.Files["https://configs.example.org/site-a.yml"] = sectionYAML("SiteA", "HOST", "fresh.example.org")
	sf.Files["https://configs.example.org/site-b.yml"] = sectionYAML("SiteB", "HOST", "b.example.org")
	sf.Files["https://configs.example.org/site-c.yml"] = sectionYAML("SiteC", "HOST", "c.example.org")
	cfg := newAppendConfig(t, sf)

	ok := cfg.ApplyAppends(DefaultAppendOption, cachePath, false)
	require.True(t, ok)

	assert.Equal(t, "fresh.example.org", cfg.Get("HOST", InSection("SiteA")))
	assert.Contains(t, sf.Fetched, "https://configs.example.org/site-a.yml")
}

func TestApplyAppendsNoLocators(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML, WithFetcher(testutil.NewScriptedFetcher()))

	assert.True(t, cfg.ApplyAppends(DefaultAppendOption, t.TempDir(), false))
	assert.True(t, cfg.ApplyAppends("", t.TempDir(), false))
}

func TestAppendsRunAtConstruction(t *testing.T) {
	sf := testutil.NewScriptedFetcher()
	sf.Files["https://configs.example.org/site-a.yml"] = sectionYAML("SiteA", "HOST", "a.example.org")
	sf.Files["https://configs.example.org/site-b.yml"] = sectionYAML("SiteB", "HOST", "b.example.org")
	sf.Files["https://configs.example.org/site-c.yml"] = sectionYAML("SiteC", "HOST", "c.example.org")

	path := testutil.WriteConfigFile(t, t.TempDir(), "setup-example.yml", appendPrimaryYAML)
	cfg := New(WithConfigPath(path), WithFetcher(sf), WithCachePath(t.TempDir()))

	assert.Equal(t, "a.example.org", cfg.Get("HOST", InSection("SiteA")))
	assert.Len(t, sf.Fetched, 3)
}

func TestAppendConfigFormatMismatch(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)
	extra := testutil.WriteConfigFile(t, t.TempDir(), "extra.cfg", "[SiteA]\nHOST=a\n")

	assert.False(t, cfg.AppendConfig(extra, FormatINI))
	assert.Nil(t, cfg.Get("HOST", InSection("SiteA")))
}

func TestAppendConfigInferredFormat(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)
	extra := testutil.WriteConfigFile(t, t.TempDir(), "extra.yml",
		string(sectionYAML("SiteA", "HOST", "a.example.org")))

	require.True(t, cfg.AppendConfig(extra, FormatUnknown))
	assert.Equal(t, "a.example.org", cfg.Get("HOST", InSection("SiteA")))
}

func TestAppendConfigReplacesSections(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)
	extra := testutil.WriteConfigFile(t, t.TempDir(), "extra.yml",
		string(sectionYAML("Section1", "PROJ_NAME", "Replaced")))

	require.True(t, cfg.AppendConfig(extra, FormatUnknown))

	// Merging is shallow: the appended section replaces the original whole.
	assert.Equal(t, "Replaced", cfg.Get("PROJ_NAME", InSection("Section1")))
	assert.Nil(t, cfg.Get("COUNTS", InSection("Section1")))
}

func TestImportConfig(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)

	assert.False(t, cfg.ImportConfig(nil))
	require.True(t, cfg.ImportConfig(map[string]interface{}{
		"Imported": map[string]interface{}{"KEY": "value"},
	}))
	assert.Equal(t, "value", cfg.Get("KEY", InSection("Imported")))
}

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)
	out := filepath.Join(t.TempDir(), "written.yml")

	require.True(t, cfg.WriteConfig(out, FormatUnknown))

	reread := New(WithConfigPath(out))
	assert.Equal(t, cfg.ExportConfig(), reread.ExportConfig())
}
