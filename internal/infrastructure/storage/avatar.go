package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxAvatarBytes = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarMirror copies a provider-hosted profile picture into our storage so
// the profile does not depend on expiring provider URLs.
type AvatarMirror struct {
	storage       Storage
	httpClient    *http.Client
	publicBaseURL string
	allowedHosts  []string
}

// NewAvatarMirror fetches only from allowedHosts and their subdomains.
func NewAvatarMirror(storage Storage, publicBaseURL string, allowedHosts []string) *AvatarMirror {
	m := &AvatarMirror{
		storage:       storage,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		allowedHosts:  allowedHosts,
	}
	m.httpClient = &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("too many avatar redirects")
			}
			return m.checkHost(req.URL)
		},
	}
	return m
}

func (m *AvatarMirror) checkHost(u *url.URL) error {
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("avatar scheme %q not allowed", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range m.allowedHosts {
		allowed = strings.ToLower(strings.TrimPrefix(allowed, "."))
		if allowed != "" && (host == allowed || strings.HasSuffix(host, "."+allowed)) {
			return nil
		}
	}
	return fmt.Errorf("avatar host %q not allowed", host)
}

// Mirror downloads sourceURL and returns the public URL of the stored copy.
// URLs already under the public base are returned unchanged.
func (m *AvatarMirror) Mirror(ctx context.Context, identityID uuid.UUID, sourceURL string) (string, error) {
	if m.publicBaseURL != "" && strings.HasPrefix(sourceURL, m.publicBaseURL+"/") {
		return sourceURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build avatar request: %w", err)
	}
	if err := m.checkHost(req.URL); err != nil {
		return "", err
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch avatar: status %d", resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("avatar has no usable content type: %w", err)
	}
	ext, ok := avatarExtensions[mediaType]
	if !ok {
		return "", fmt.Errorf("unsupported avatar content type: %s", mediaType)
	}

	body := io.LimitReader(resp.Body, maxAvatarBytes+1)
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) > maxAvatarBytes {
		return "", fmt.Errorf("avatar exceeds %d bytes", maxAvatarBytes)
	}

	key, err := m.storage.Upload(ctx, "avatars/"+identityID.String()+ext, mediaType, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return m.publicBaseURL + "/" + key, nil
}
