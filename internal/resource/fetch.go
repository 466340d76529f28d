package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"mini-splash/internal/netx"

	"github.com/google/uuid"
)

// Fetcher downloads remote resources into a cache directory. Each URL maps to
// a stable file name so later runs reuse the download.
type Fetcher struct {
	client *http.Client
	dir    string
}

// NewFetcher creates a fetcher whose client routes through the progress
// interceptor. A nil next uses http.DefaultTransport.
func NewFetcher(dir string, timeout time.Duration, next http.RoundTripper, listener netx.ProgressListener) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: netx.NewProgressInterceptor(next, listener),
		},
		dir: dir,
	}
}

// CachePath returns where url is stored.
func (f *Fetcher) CachePath(url string) string {
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
	if ext := path.Ext(url); ext != "" && len(ext) <= 8 {
		name += ext
	}
	return filepath.Join(f.dir, name)
}

// Fetch downloads url unless it is already cached and returns the local path.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	dst := f.CachePath(url)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat cache: %w", err)
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(f.dir, ".fetch-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store %s: %w", url, err)
	}

	log.Printf("fetch: %s (%d bytes) -> %s", url, n, dst)
	return dst, nil
}

// Tasks returns one reload task per URL. onFetched, if set, is called with the
// local path after each successful download.
func (f *Fetcher) Tasks(urls []string, onFetched func(url, path string) error) []Task {
	tasks := make([]Task, 0, len(urls))
	for _, u := range urls {
		tasks = append(tasks, Task{
			Name:   "fetch " + u,
			Weight: 1,
			Run: func(ctx context.Context) error {
				p, err := f.Fetch(ctx, u)
				if err != nil || onFetched == nil {
					return err
				}
				return onFetched(u, p)
			},
		})
	}
	return tasks
}
