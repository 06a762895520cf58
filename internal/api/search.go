package api

import (
	"context"
	"net/url"

	"github.com/altinukshini/ci-downloader/internal/model"
)

// SearchPath returns the property search path for q. Parameters keep the
// CI_JOB_NAME, CI_COMMIT_SHA order the server documents.
func SearchPath(q model.SearchQuery) string {
	return "/api/search/prop?CI_JOB_NAME=" + url.QueryEscape(q.Device) +
		"&CI_COMMIT_SHA=" + url.QueryEscape(q.CommitHash)
}

func (c *Client) SearchURL(q model.SearchQuery) string {
	return c.baseURL + SearchPath(q)
}

// Search finds artifacts tagged with the query's job name and commit.
func (c *Client) Search(ctx context.Context, q model.SearchQuery) (*model.SearchResponse, error) {
	var resp model.SearchResponse
	if err := c.getJSON(ctx, c.SearchURL(q), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
