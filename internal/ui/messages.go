package ui

import (
	"github.com/altinukshini/ci-downloader/internal/model"
)

// ResolvedMsg carries the outcome of one resolution. Seq ties it to the
// request that produced it so results of abandoned requests are dropped.
type ResolvedMsg struct {
	Seq      int
	Query    model.SearchQuery
	Artifact model.ResolvedArtifact
	Err      error
}

type HistoryRecordedMsg struct {
	Entry model.HistoryEntry
	Err   error
}

type HistoryClearedMsg struct {
	Err error
}

type HistoryLoadedMsg struct {
	Lines []string
	Err   error
}

type BrowserOpenedMsg struct {
	URL string
	Err error
}

type ClipboardMsg struct {
	Text string
	Err  error
}
