// Package resolver turns a device and commit hash into the download URI of a
// CI build artifact.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/altinukshini/ci-downloader/internal/api"
	"github.com/altinukshini/ci-downloader/internal/model"
)

// Artifacts is the subset of the artifact server client the resolver needs.
type Artifacts interface {
	Search(ctx context.Context, q model.SearchQuery) (*model.SearchResponse, error)
	GetStorageInfo(ctx context.Context, uri string) (*api.StorageInfo, error)
}

type Resolver struct {
	artifacts Artifacts
	logger    *slog.Logger
}

func New(artifacts Artifacts, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{artifacts: artifacts, logger: logger}
}

// Resolve runs the search, picks one result and fetches its download URI.
// Every failure is returned as *Error; nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, q model.SearchQuery) (model.ResolvedArtifact, error) {
	if q.Device == "" || q.CommitHash == "" {
		return model.ResolvedArtifact{}, &Error{Kind: KindInvalidInput, Msg: "Device and commit hash are required."}
	}

	log := r.logger.With("device", q.Device, "commit", q.CommitHash, "brand", q.BrandFilter)

	resp, err := r.artifacts.Search(ctx, q)
	if err != nil {
		log.Info("search failed", "error", err)
		return model.ResolvedArtifact{}, classify(err)
	}
	if resp == nil || resp.Results == nil {
		log.Info("search returned no results field")
		return model.ResolvedArtifact{}, &Error{Kind: KindNoData, Msg: MsgNoData}
	}

	entry, ok := SelectEntry(resp.Results, q.BrandFilter)
	if !ok || entry.URI == "" {
		log.Info("no matching search result", "results", len(resp.Results))
		return model.ResolvedArtifact{}, &Error{Kind: KindNoMatch, Msg: MsgNoMatch}
	}
	log.Debug("selected search result", "uri", entry.URI)

	info, err := r.artifacts.GetStorageInfo(ctx, entry.URI)
	if err != nil {
		log.Info("storage fetch failed", "uri", entry.URI, "error", err)
		return model.ResolvedArtifact{}, classify(err)
	}
	if info == nil || info.DownloadURI == "" {
		if info != nil && info.RawText != "" {
			log.Info("storage response was plain text", "uri", entry.URI, "text", truncate(info.RawText, 200))
		}
		return model.ResolvedArtifact{}, &Error{Kind: KindNoDownloadURI, Msg: MsgNoDownloadURI}
	}

	log.Info("resolved artifact", "download_uri", info.DownloadURI)
	return model.ResolvedArtifact{DownloadURI: info.DownloadURI}, nil
}

// SelectEntry applies the selection policy: with no brand the first entry
// wins, otherwise the first entry whose URI contains brand.
func SelectEntry(results []model.SearchEntry, brand string) (model.SearchEntry, bool) {
	if len(results) == 0 {
		return model.SearchEntry{}, false
	}
	if brand == "" {
		return results[0], true
	}
	for _, e := range results {
		if strings.Contains(e.URI, brand) {
			return e, true
		}
	}
	return model.SearchEntry{}, false
}

func classify(err error) error {
	var se *api.StatusError
	if errors.As(err, &se) {
		return &Error{Kind: KindStatus, Status: se.Code, Err: err}
	}
	var de *api.DecodeError
	if errors.As(err, &de) {
		return &Error{Kind: KindNoData, Msg: MsgNoData, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
