// Package history keeps the flat, append-only file of recorded verdicts.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/altinukshini/ci-downloader/internal/model"
)

// Log is a line-oriented text file. No handle is held between calls.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string { return l.path }

// Append writes line followed by a newline at the end of the file,
// creating it if needed.
func (l *Log) Append(line string) (err error) {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close history: %w", cerr)
		}
	}()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Record appends the formatted entry.
func (l *Log) Record(e model.HistoryEntry) error {
	return l.Append(e.String())
}

// Clear truncates the file to empty.
func (l *Log) Clear() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return f.Close()
}

// Lines returns the recorded lines in file order. A missing file has none.
func (l *Log) Lines() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return lines, nil
}

// NewEntry builds the history entry for a verdict on a resolved download URI.
func NewEntry(commitHash, downloadURI string, verdict model.Verdict) model.HistoryEntry {
	return model.HistoryEntry{
		CommitHash: commitHash,
		Digits:     ExtractDigits(downloadURI),
		Verdict:    verdict,
	}
}

// ExtractDigits concatenates every run of decimal digits in text, left to
// right, without separators: ".../v1.2.3-build45/artifact" gives "12345".
func ExtractDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
