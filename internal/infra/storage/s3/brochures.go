package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	domaincatalog "gedsejours/internal/domain/catalog"
)

// BrochureMirror copies a stay's brochure PDF from its source site into the
// bucket so the platform serves it from its own URL.
type BrochureMirror struct {
	Uploader Uploader
	HTTP     *http.Client
	Logger   *slog.Logger
}

// Mirror downloads the PDF at sourceURL and uploads it under a stable key.
// Returns the public URL for Stay.BrochureURL.
func (m *BrochureMirror) Mirror(ctx context.Context, stayID domaincatalog.StayID, sourceURL string) (string, error) {
	if m == nil || m.Uploader == nil {
		return "", errors.New("s3: brochure mirror not configured")
	}
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return "", errors.New("s3: brochure source url is required")
	}
	httpClient := m.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("s3: brochure fetch returned status %d", resp.StatusCode)
	}

	key := fmt.Sprintf("brochures/%s.pdf", stayID)
	publicURL, err := m.Uploader.Upload(ctx, key, resp.Body, "application/pdf")
	if err != nil {
		return "", err
	}
	if m.Logger != nil {
		m.Logger.Info("brochure mirrored", "stay_id", stayID, "url", publicURL)
	}
	return publicURL, nil
}
