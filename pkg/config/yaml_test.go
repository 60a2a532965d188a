package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkit/confkit/pkg/testutil"
)

const sampleYAML = `---
DEFAULT:
    BIRD_REPO_PATH: MOCK_BIRD_REPO
    PDBX_REPO_PATH: MOCK_PDBX_SANDBOX
Section1:
    PROJ_NAME: TestProject
    ENV_OPTION_A: TEST_ENV_VAR
    COUNTS:
        - 1
        - 2
        - 3
    SubA:
        Name: THE_NAME
        Measured: 1.1234
        Enabled: true
`

func newYAMLConfig(t *testing.T, content string, opts ...Option) *Config {
	t.Helper()
	path := testutil.WriteConfigFile(t, t.TempDir(), "setup-example.yml", content)
	return New(append([]Option{WithConfigPath(path)}, opts...)...)
}

func TestParseYAMLTypesPreserved(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)

	require.Equal(t, FormatYAML, cfg.ConfigFormat())
	assert.Equal(t, "TestProject", cfg.Get("PROJ_NAME", InSection("Section1")))
	assert.Equal(t, []interface{}{1, 2, 3}, cfg.Get("COUNTS", InSection("Section1")))
	assert.Equal(t, 1.1234, cfg.Get("SubA.Measured", InSection("Section1")))
	assert.Equal(t, true, cfg.Get("SubA.Enabled", InSection("Section1")))
}

func TestYAMLNoDefaultSectionInheritance(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)

	// Nested format connects a lookup to the default section only through
	// explicit aliasing, never implicitly.
	assert.Nil(t, cfg.Get("BIRD_REPO_PATH", InSection("Section1")))
	assert.Equal(t, "MOCK_BIRD_REPO", cfg.Get("BIRD_REPO_PATH"))
}

func TestYAMLFormatInferredFromExtension(t *testing.T) {
	for _, ext := range []string{"yml", "yaml"} {
		path := testutil.WriteConfigFile(t, t.TempDir(), "conf."+ext, sampleYAML)
		cfg := New(WithConfigPath(path))
		assert.Equal(t, FormatYAML, cfg.ConfigFormat(), "extension %s", ext)
	}

	path := testutil.WriteConfigFile(t, t.TempDir(), "conf.txt", "[DEFAULT]\nA=1\n")
	cfg := New(WithConfigPath(path))
	assert.Equal(t, FormatINI, cfg.ConfigFormat())
}

func TestYAMLBadFileYieldsEmptyStore(t *testing.T) {
	cfg := newYAMLConfig(t, "key: [unclosed\n")
	assert.Nil(t, cfg.Get("ANYTHING"))
}

func TestSerializeYAMLStreamStart(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)

	out := filepath.Join(t.TempDir(), "out-setup-example.yml")
	require.True(t, cfg.WriteConfig(out, FormatYAML))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))
}

func TestYAMLRoundTripDeepEquals(t *testing.T) {
	cfg := newYAMLConfig(t, sampleYAML)
	want := cfg.ExportConfig()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.yml")
	require.True(t, cfg.WriteConfig(first, FormatYAML))

	reloaded := New(WithConfigPath(first), WithFormat(FormatYAML))
	assert.Equal(t, want, reloaded.ExportConfig())

	// A second round-trip must be byte-stable for diffing.
	second := filepath.Join(dir, "second.yml")
	require.True(t, reloaded.WriteConfig(second, FormatYAML))

	firstData, err := os.ReadFile(first)
	require.NoError(t, err)
	secondData, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstData), string(secondData))
}

func TestExportImportYAMLDataSet(t *testing.T) {
	dataSet := func() map[string]interface{} {
		leaf := map[string]interface{}{
			"Name":     "THE_NAME",
			"Location": "/a/b/c/loc.dat",
			"Date":     "2017-09-18",
			"Counts":   []interface{}{1, 2, 3},
			"Measured": 1.1234,
		}
		out := map[string]interface{}{}
		for _, section := range []string{"Section1", "Section2", "Section3"} {
			subs := map[string]interface{}{}
			for _, sub := range []string{"SubA", "SubB", "SubC"} {
				subs[sub] = deepCopy(leaf)
			}
			out[section] = subs
		}
		return out
	}

	cfg := New(WithFormat(FormatYAML))
	require.True(t, cfg.ImportConfig(dataSet()))

	out := filepath.Join(t.TempDir(), "out-export-example.yml")
	require.True(t, cfg.WriteConfig(out, FormatYAML))

	reloaded := New(WithConfigPath(out), WithFormat(FormatYAML))
	require.GreaterOrEqual(t, len(reloaded.ExportConfig()), 1)
	assert.Equal(t, "THE_NAME", reloaded.Get("SubA.Name", InSection("Section1")))
	assert.Len(t, reloaded.Get("SubA.Counts", InSection("Section3")), 3)
}
