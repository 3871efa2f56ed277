// Package boundary loads region boundary geometry: TIGER shapefile archives
// fetched over HTTP or FTP and converted to GeoJSON, plus lookup over loaded
// feature collections.
package boundary

import (
	"archive/zip"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FetchOptions configures archive downloads.
type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RateLimit caps download request starts; Census mirrors throttle
	// aggressive clients. Zero means no limit.
	RateLimit rate.Limit
	Burst     int
}

// Fetcher downloads boundary archives over HTTP or FTP.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	userAgent string
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(client *http.Client, opts FetchOptions) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(opts.RateLimit, burst)
	}
	return &Fetcher{client: client, limiter: limiter, timeout: timeout, userAgent: opts.UserAgent}
}

// Download fetches a URL to a local file, dispatching on scheme. Supported
// schemes are http, https, and ftp.
func (f *Fetcher) Download(ctx context.Context, rawURL, dest string) error {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "boundary: rate limit wait")
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return eris.Wrap(err, "boundary: parse url")
	}

	log := zap.L().With(zap.String("component", "boundary.fetcher"), zap.String("url", rawURL))
	log.Info("downloading boundary archive")

	switch u.Scheme {
	case "http", "https":
		return f.downloadHTTP(ctx, rawURL, dest)
	case "ftp":
		return f.downloadFTP(ctx, u, dest)
	default:
		return eris.Errorf("boundary: unsupported scheme %q", u.Scheme)
	}
}

func (f *Fetcher) downloadHTTP(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "boundary: build request")
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "boundary: download")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("boundary: download returned status %d", resp.StatusCode)
	}

	return writeFile(dest, resp.Body)
}

func (f *Fetcher) downloadFTP(ctx context.Context, u *url.URL, dest string) error {
	host := u.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	if u.Path == "" {
		return eris.New("boundary: empty path in ftp url")
	}

	conn, err := ftp.Dial(host, ftp.DialWithContext(ctx), ftp.DialWithTimeout(f.timeout))
	if err != nil {
		return eris.Wrapf(err, "boundary: ftp dial %s", host)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return eris.Wrap(err, "boundary: ftp login")
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return eris.Wrapf(err, "boundary: ftp retr %s", u.Path)
	}
	defer resp.Close() //nolint:errcheck

	return writeFile(dest, resp)
}

func writeFile(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return eris.Wrapf(err, "boundary: create %s", dest)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, r); err != nil {
		return eris.Wrapf(err, "boundary: write %s", dest)
	}
	return nil
}

// ExtractZip extracts a ZIP archive into the destination directory. Entry
// paths are flattened to base names; TIGER archives have no subdirectories.
func ExtractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "boundary: open zip")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		destPath := filepath.Join(destDir, filepath.Base(f.Name))

		rc, err := f.Open()
		if err != nil {
			return eris.Wrapf(err, "boundary: open zip entry %s", f.Name)
		}
		if err := writeFile(destPath, rc); err != nil {
			_ = rc.Close()
			return err
		}
		_ = rc.Close()
	}
	return nil
}

// FindFileByExt finds the first file with the given extension in a directory.
func FindFileByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrap(err, "boundary: read directory")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("boundary: no %s file found in %s", ext, dir)
}
