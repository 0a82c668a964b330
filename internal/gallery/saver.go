package gallery

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

// DownloadError indicates the remote server answered the image download
// with a non-200 status.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download image from %s: status code %d", e.URL, e.StatusCode)
}

// Saver downloads generated images and writes them to disk as PNG.
type Saver struct {
	httpClient *http.Client
	store      *Store
	logger     zerolog.Logger
}

// NewSaver creates a Saver writing through the given store's directories.
func NewSaver(store *Store, logger zerolog.Logger) *Saver {
	return &Saver{
		httpClient: &http.Client{},
		store:      store,
		logger:     logger.With().Str("component", "gallery").Logger(),
	}
}

// ResolveTargetDir decides where an image should be written. An empty
// target selects the default directory. A non-empty target is created
// (recursively) and returned as an absolute path; if creation fails the
// error is logged and the default directory is used instead, so a save
// is never lost to a bad destination.
//
// The second return value reports whether the custom target is in use
// and should be recorded on the ImageRecord.
func (sv *Saver) ResolveTargetDir(target string) (string, bool) {
	if target == "" {
		return sv.store.DefaultDir(), false
	}

	abs, err := filepath.Abs(target)
	if err == nil {
		err = os.MkdirAll(abs, 0o755)
	}
	if err != nil {
		sv.logger.Warn().Err(err).Str("target_directory", target).
			Msg("cannot use custom directory, falling back to default")
		return sv.store.DefaultDir(), false
	}

	sv.logger.Debug().Str("dir", abs).Msg("using custom save directory")
	return abs, true
}

// Download fetches the image at url and writes it to path as PNG,
// returning the decoded image so callers can derive metadata without
// re-reading the file. A non-200 response yields a *DownloadError and
// nothing is written. The request is a single plain GET, no retries.
func (sv *Saver) Download(ctx context.Context, url, path string) (image.Image, error) {
	sv.logger.Info().Str("url", url).Msg("downloading image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := sv.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("downloaded data is not a valid image: %w", err)
	}

	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("failed to write image to %s: %w", path, err)
	}

	sv.logger.Info().Str("path", path).Msg("image saved")
	return img, nil
}
