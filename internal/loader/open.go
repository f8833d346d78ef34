package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

func openFile(_ context.Context, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("config loader: file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config loader: open %s: %w", path, err)
	}
	return f, nil
}

func fsOpener(fsys fs.FS) opener {
	return func(_ context.Context, name string) (io.ReadCloser, error) {
		if name == "" {
			return nil, errors.New("config loader: fs path is required")
		}
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("config loader: open %s: %w", name, err)
		}
		return f, nil
	}
}

func httpClient(options Options) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTP:
		return &http.Client{Timeout: options.RequestTimeout}
	}
	return nil
}

func httpOpener(client *http.Client, timeout time.Duration) opener {
	return func(ctx context.Context, url string) (io.ReadCloser, error) {
		if url == "" {
			return nil, errors.New("config loader: url is required")
		}
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("config loader: request %s: %w", url, err)
		}
		req.Header.Set("Accept", "application/yaml, application/json;q=0.9, */*;q=0.1")

		resp, err := client.Do(req)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("config loader: fetch %s: %w", url, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			cancel()
			return nil, fmt.Errorf("config loader: fetch %s: unexpected status %s", url, resp.Status)
		}
		return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
	}
}

// cancelOnClose releases the request context once the body is consumed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}
