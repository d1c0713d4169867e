// Package netx fetches recording artifacts from the plain URLs the service
// hands out.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"

	"github.com/dmitrijs2005/meetrec/internal/filex"
)

const defaultArtifactName = "recording.zip"

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ArtifactName picks a local file name from the last path segment of
// link.
func ArtifactName(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return defaultArtifactName
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultArtifactName
	}
	return name
}

// Download stores the body of a GET to link in dir and returns the path
// written. Existing files are never overwritten. A partial file is removed
// when the transfer fails.
func Download(ctx context.Context, doer Doer, link, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := doer.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	dst, err := filex.UniquePath(dir, ArtifactName(link))
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	return dst, nil
}
