package commands

import (
	"io"
	"os"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"

	"github.com/altinukshini/ci-downloader/internal/model"
	"github.com/altinukshini/ci-downloader/internal/ui"
)

const defaultTableWidth = 80

// table renders aligned columns on a terminal and tab-separated rows otherwise.
type table struct {
	tableprinter.TablePrinter
	tty bool
}

func newTable(w io.Writer) *table {
	t := term.FromEnv()
	tty := w == io.Writer(os.Stdout) && t.IsTerminalOutput()
	width := defaultTableWidth
	if tty {
		if cols, _, err := t.Size(); err == nil && cols > 0 {
			width = cols
		}
	}
	return &table{TablePrinter: tableprinter.New(w, tty, width), tty: tty}
}

func (t *table) addVerdict(v model.Verdict) {
	if !t.tty {
		t.AddField(string(v))
		return
	}
	style := ui.StyleFailure
	if v == model.VerdictNotRepro {
		style = ui.StyleSuccess
	}
	t.AddField(string(v), tableprinter.WithColor(func(s string) string { return style.Render(s) }))
}
