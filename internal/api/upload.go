package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// UploadImage posts the named file as a multipart form and returns the URL
// the server stored it under. The response body is either a bare string or
// a JSON-encoded string; both forms are accepted.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return "", errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", errors.Wrap(err, "copy file content")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "finalize form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "POST /api/upload")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", errors.Wrap(err, "read upload response")
	}

	var url string
	if err := json.Unmarshal(raw, &url); err != nil {
		url = strings.TrimSpace(string(raw))
	}
	if url == "" {
		return "", errors.New("upload response missing URL")
	}
	return url, nil
}
