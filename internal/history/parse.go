package history

import (
	"strings"

	"github.com/altinukshini/ci-downloader/internal/model"
)

// ParseEntry splits a history line back into its parts. Lines that were not
// written by Record report false.
func ParseEntry(line string) (model.HistoryEntry, bool) {
	commit, rest, ok := strings.Cut(line, " - ")
	if !ok || commit == "" {
		return model.HistoryEntry{}, false
	}
	digits, verdict, ok := strings.Cut(rest, " ")
	if !ok || ExtractDigits(digits) != digits {
		return model.HistoryEntry{}, false
	}
	v := model.Verdict(verdict)
	if !v.Valid() {
		return model.HistoryEntry{}, false
	}
	return model.HistoryEntry{CommitHash: commit, Digits: digits, Verdict: v}, true
}
