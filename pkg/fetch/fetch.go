// Package fetch supplies the external collaborator that confkit's append
// orchestrator relies on: existence probes, locator basenames, and
// fetch-to-file for both local paths and remote URLs.
package fetch

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"

	"github.com/confkit/confkit/pkg/errors"
	"github.com/confkit/confkit/pkg/logging"
)

// Fetcher is the capability surface the configuration core consumes. Any
// failure is reported per call; the core aggregates failures without
// aborting.
type Fetcher interface {
	// Exists reports whether a local path exists.
	Exists(path string) bool

	// Basename returns the file name portion of a locator, with any URL
	// query or fragment stripped.
	Basename(locator string) string

	// Fetch copies the content of locator to destPath, creating parent
	// directories as needed and overwriting any previous content.
	Fetch(locator, destPath string) error
}

type fetcher struct {
	fs     afero.Fs
	client *resty.Client
}

// New creates a Fetcher over the given filesystem. Remote locators
// (http, https) are retrieved with a default-configured resty client.
func New(fs afero.Fs) Fetcher {
	return &fetcher{fs: fs, client: resty.New()}
}

func (f *fetcher) Exists(p string) bool {
	ok, err := afero.Exists(f.fs, p)
	return err == nil && ok
}

func (f *fetcher) Basename(locator string) string {
	if strings.Contains(locator, "://") {
		if u, err := url.Parse(locator); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(locator)
}

func (f *fetcher) Fetch(locator, destPath string) error {
	log := logging.GetLogger("fetch")

	if err := f.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "creating cache directory for %q", destPath)
	}

	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		resp, err := f.client.R().Get(locator)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFetch, "fetching %q", locator).WithDetail("locator", locator)
		}
		if resp.IsError() {
			return errors.Newf(errors.ErrFetch, "fetching %q: status %s", locator, resp.Status())
		}
		if err := afero.WriteFile(f.fs, destPath, resp.Body(), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFetch, "writing %q", destPath)
		}
		log.Debug().Str("locator", locator).Str("dest", destPath).Msg("Fetched remote asset")
		return nil

	case strings.HasPrefix(locator, "file://"):
		return f.copyLocal(strings.TrimPrefix(locator, "file://"), destPath)

	default:
		return f.copyLocal(locator, destPath)
	}
}

func (f *fetcher) copyLocal(src, destPath string) error {
	data, err := afero.ReadFile(f.fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "reading %q", src)
	}
	if err := afero.WriteFile(f.fs, destPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "writing %q", destPath)
	}
	return nil
}
