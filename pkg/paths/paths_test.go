package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheDirOverride(t *testing.T) {
	t.Setenv(EnvCacheDir, "/custom/cache")
	assert.Equal(t, "/custom/cache", CacheDir())
}

func TestStateDirOverride(t *testing.T) {
	t.Setenv(EnvStateDir, "/custom/state")
	assert.Equal(t, "/custom/state", StateDir())
	assert.Equal(t, filepath.Join("/custom/state", "confkit.log"), LogFilePath())
}

func TestDefaultsEndWithAppName(t *testing.T) {
	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvStateDir, "")
	assert.Equal(t, "confkit", filepath.Base(CacheDir()))
	assert.Equal(t, "confkit", filepath.Base(StateDir()))
}
