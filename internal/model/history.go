package model

import "fmt"

type Verdict string

const (
	VerdictRepro    Verdict = "Repro"
	VerdictNotRepro Verdict = "Not Repro"
)

func (v Verdict) Valid() bool {
	return v == VerdictRepro || v == VerdictNotRepro
}

// HistoryEntry is one recorded outcome. Digits holds the numeric fragment
// taken from the resolved download URI.
type HistoryEntry struct {
	CommitHash string
	Digits     string
	Verdict    Verdict
}

func (e HistoryEntry) String() string {
	return fmt.Sprintf("%s - %s %s", e.CommitHash, e.Digits, e.Verdict)
}
