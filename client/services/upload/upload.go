package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lidofinance/ensreg/client/types"
)

const (
	DefaultTimeout = 30 * time.Second

	maxImageSize = 10 << 20
)

var (
	ErrImageTooLarge = errors.New("image too large")
	ErrEmptyResponse = errors.New("upload response has no url")
)

type uploadResponse struct {
	URL string `json:"url"`
	CID string `json:"cid"`
}

// HTTPUploader posts local images to a pinning service as multipart forms.
type HTTPUploader struct {
	endpoint string
	token    string
	gateway  string
	client   *http.Client
}

func NewHTTPUploader(endpoint, token, gateway string, timeout time.Duration) *HTTPUploader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPUploader{
		endpoint: endpoint,
		token:    token,
		gateway:  strings.TrimSuffix(gateway, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Upload returns the URL the image is reachable at. A service answering
// with a content id only gets the id resolved against the gateway, or an
// ipfs:// URL without one.
func (u *HTTPUploader) Upload(ctx context.Context, image types.ImageMetadata) (string, error) {
	data, err := readImage(image.Path)
	if err != nil {
		return "", err
	}

	filename := image.Filename
	if filename == "" {
		filename = filepath.Base(image.Path)
	}
	body, contentType, err := multipartBody(filename, image.Mime, data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload of %s failed with status %d: %s", filename, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result uploadResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	switch {
	case result.URL != "":
		return result.URL, nil
	case result.CID != "" && u.gateway != "":
		return u.gateway + "/ipfs/" + result.CID, nil
	case result.CID != "":
		return "ipfs://" + result.CID, nil
	}
	return "", ErrEmptyResponse
}

// readImage accepts plain paths, file:// URLs and paths relative to the home
// directory.
func readImage(path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "file://")
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() > maxImageSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

func multipartBody(filename, mime string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	header.Set("Content-Type", mime)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
