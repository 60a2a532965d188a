package testutil

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/confkit/confkit/pkg/errors"
	"github.com/confkit/confkit/pkg/fetch"
)

// ScriptedFetcher is a fetch.Fetcher whose locator contents and failures
// are scripted by the test. Fetched content is written to the real
// filesystem (dest paths are expected to live under t.TempDir) so the
// configuration core can read it back.
type ScriptedFetcher struct {
	// Files maps locator to the content a fetch delivers.
	Files map[string][]byte

	// FailOn lists locators whose fetch fails.
	FailOn map[string]bool

	// Fetched records the locators fetched, in order.
	Fetched []string

	fs    afero.Fs
	inner fetch.Fetcher
}

// NewScriptedFetcher creates a ScriptedFetcher over the OS filesystem.
func NewScriptedFetcher() *ScriptedFetcher {
	fs := afero.NewOsFs()
	return &ScriptedFetcher{
		Files:  make(map[string][]byte),
		FailOn: make(map[string]bool),
		fs:     fs,
		inner:  fetch.New(fs),
	}
}

func (f *ScriptedFetcher) Exists(path string) bool {
	return f.inner.Exists(path)
}

func (f *ScriptedFetcher) Basename(locator string) string {
	return f.inner.Basename(locator)
}

func (f *ScriptedFetcher) Fetch(locator, destPath string) error {
	f.Fetched = append(f.Fetched, locator)

	if f.FailOn[locator] {
		return errors.Newf(errors.ErrFetch, "scripted failure for %q", locator)
	}
	content, ok := f.Files[locator]
	if !ok {
		return errors.Newf(errors.ErrFetch, "no scripted content for %q", locator)
	}
	if err := f.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "creating cache directory for %q", destPath)
	}
	return afero.WriteFile(f.fs, destPath, content, 0644)
}
