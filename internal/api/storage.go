package api

import (
	"context"
	"encoding/json"
	"strings"
)

// StorageInfo is the artifact storage document behind a search result URI.
// RawText is set instead of DownloadURI when the server answered with a
// non-JSON body; some misconfigured servers do that and the value is kept
// only for diagnostics.
type StorageInfo struct {
	DownloadURI string `json:"downloadUri"`
	RawText     string `json:"-"`
}

// GetStorageInfo fetches the storage document at the absolute uri.
func (c *Client) GetStorageInfo(ctx context.Context, uri string) (*StorageInfo, error) {
	body, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}
	var info StorageInfo
	if err := json.Unmarshal(body, &info); err != nil {
		c.logger.Debug("storage response is not JSON, keeping raw text", "url", uri, "error", err)
		return &StorageInfo{RawText: strings.TrimSpace(string(body))}, nil
	}
	return &info, nil
}
