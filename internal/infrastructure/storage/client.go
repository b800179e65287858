package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TonyDastan/workwave/internal/config"
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Client uploads files to an external blob store over HTTP. The store is
// expected to answer with a JSON body carrying the public URL under
// "secure_url" or "url".
type Client struct {
	http *resty.Client
	cfg  config.StorageConfig
	log  *logger.Logger
}

func NewClient(cfg config.StorageConfig, log *logger.Logger) ports.BlobStore {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(0)
	return &Client{http: httpClient, cfg: cfg, log: log}
}

func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	req := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data))
	if c.cfg.APIKey != "" {
		req.SetAuthToken(c.cfg.APIKey)
	}

	resp, err := req.Post(c.cfg.UploadURL)
	if err != nil {
		c.log.Errorw("storage_upload_failed", "filename", filename, "error", err)
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	if resp.IsError() {
		c.log.Errorw("storage_upload_rejected", "filename", filename, "status", resp.StatusCode())
		return "", fmt.Errorf("storage upload rejected: status %d", resp.StatusCode())
	}

	publicURL := gjson.GetBytes(resp.Body(), "secure_url").String()
	if publicURL == "" {
		publicURL = gjson.GetBytes(resp.Body(), "url").String()
	}
	if publicURL == "" {
		return "", fmt.Errorf("storage upload response missing url")
	}

	c.log.Infow("storage_upload_ok", "filename", filename, "url", publicURL)
	return publicURL, nil
}

// Delete removes a stored file by its public id. A missing file counts as
// deleted so retries stay idempotent.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	req := c.http.R().SetContext(ctx)
	if c.cfg.APIKey != "" {
		req.SetAuthToken(c.cfg.APIKey)
	}

	resp, err := req.Delete(strings.TrimRight(c.cfg.UploadURL, "/") + "/" + url.PathEscape(fileID))
	if err != nil {
		c.log.Errorw("storage_delete_failed", "file_id", fileID, "error", err)
		return fmt.Errorf("storage delete failed: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		c.log.Errorw("storage_delete_rejected", "file_id", fileID, "status", resp.StatusCode())
		return fmt.Errorf("storage delete rejected: status %d", resp.StatusCode())
	}

	c.log.Infow("storage_delete_ok", "file_id", fileID)
	return nil
}
