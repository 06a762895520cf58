package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/ci-downloader/internal/config"
	"github.com/altinukshini/ci-downloader/internal/history"
	"github.com/altinukshini/ci-downloader/internal/model"
	"github.com/altinukshini/ci-downloader/internal/resolver"
	"github.com/altinukshini/ci-downloader/internal/tui/confirm"
	"github.com/altinukshini/ci-downloader/internal/tui/form"
	"github.com/altinukshini/ci-downloader/internal/tui/historyview"
	"github.com/altinukshini/ci-downloader/internal/ui"
)

const actionClearHistory = "clear-history"

type Resolver interface {
	Resolve(ctx context.Context, q model.SearchQuery) (model.ResolvedArtifact, error)
}

type HistoryStore interface {
	Record(e model.HistoryEntry) error
	Clear() error
	Lines() ([]string, error)
	Path() string
}

type Browser interface {
	Browse(url string) error
}

// Deps are the side-effecting collaborators of the app.
type Deps struct {
	Resolver  Resolver
	History   HistoryStore
	Browser   Browser
	Clipboard func() (string, error)
}

// State is everything the result area and action buttons render from.
type State struct {
	Query       model.SearchQuery
	ResolvedURI string
	LastError   *resolver.Error
}

// Resolved reports whether download and verdict actions are available.
func (s State) Resolved() bool { return s.ResolvedURI != "" }

type App struct {
	cfg  config.Config
	deps Deps
	ctx  context.Context

	// Views
	form          form.Model
	historyView   historyview.Model
	confirmDialog confirm.Model
	spinner       spinner.Model
	help          help.Model

	// State
	state       State
	seq         int
	resolving   bool
	cancel      context.CancelFunc
	width       int
	height      int
	status      string
	statusErr   bool
	showHistory bool
	showHelp    bool
}

func NewApp(ctx context.Context, cfg config.Config, deps Deps) App {
	f := form.New(cfg.Devices, cfg.TVBrands)
	f.FocusCommit()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleInfo

	return App{
		cfg:         cfg,
		deps:        deps,
		ctx:         ctx,
		form:        f,
		historyView: historyview.New(deps.History.Path()),
		spinner:     sp,
		help:        help.New(),
		status:      "Enter a device and commit, then run",
	}
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current render state.
func (a App) State() State { return a.state }

// --- Commands ---

func (a App) startResolve(q model.SearchQuery) (tea.Model, tea.Cmd) {
	if a.resolving {
		a.setStatus("A lookup is already running", false)
		return &a, nil
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if a.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(a.ctx, a.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(a.ctx)
	}

	a.seq++
	a.resolving = true
	a.cancel = cancel
	a.state = State{Query: q}
	a.setStatus(fmt.Sprintf("Looking up %s @ %s...", q.Device, shortSHA(q.CommitHash)), false)

	seq := a.seq
	r := a.deps.Resolver
	return &a, tea.Batch(a.spinner.Tick, func() tea.Msg {
		defer cancel()
		artifact, err := r.Resolve(ctx, q)
		return ui.ResolvedMsg{Seq: seq, Query: q, Artifact: artifact, Err: err}
	})
}

// abandon drops the in-flight lookup, if any. Its result is ignored on
// arrival because the sequence number moved on.
func (a *App) abandon() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.resolving {
		a.seq++
		a.resolving = false
	}
}

func (a App) recordVerdict(v model.Verdict) (tea.Model, tea.Cmd) {
	if !a.state.Resolved() {
		a.setStatus("Nothing to record: run a lookup first", true)
		return &a, nil
	}
	entry := history.NewEntry(a.state.Query.CommitHash, a.state.ResolvedURI, v)
	store := a.deps.History
	return &a, func() tea.Msg {
		return ui.HistoryRecordedMsg{Entry: entry, Err: store.Record(entry)}
	}
}

func (a App) openDownload() (tea.Model, tea.Cmd) {
	if !a.state.Resolved() {
		a.setStatus("Download unavailable: run a lookup first", true)
		return &a, nil
	}
	u := a.state.ResolvedURI
	b := a.deps.Browser
	return &a, func() tea.Msg {
		return ui.BrowserOpenedMsg{URL: u, Err: b.Browse(u)}
	}
}

func (a App) paste() tea.Cmd {
	read := a.deps.Clipboard
	return func() tea.Msg {
		if read == nil {
			return ui.ClipboardMsg{Err: fmt.Errorf("clipboard unavailable")}
		}
		text, err := read()
		return ui.ClipboardMsg{Text: text, Err: err}
	}
}

func (a App) loadHistory() tea.Cmd {
	store := a.deps.History
	return func() tea.Msg {
		lines, err := store.Lines()
		return ui.HistoryLoadedMsg{Lines: lines, Err: err}
	}
}

func (a App) clearHistory() tea.Cmd {
	store := a.deps.History
	return func() tea.Msg {
		return ui.HistoryClearedMsg{Err: store.Clear()}
	}
}

func (a App) askClearHistory() (tea.Model, tea.Cmd) {
	a.confirmDialog = confirm.New(
		"Clear history",
		fmt.Sprintf("Remove every entry from %s?", a.deps.History.Path()),
		actionClearHistory,
	)
	return &a, nil
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.confirmDialog.IsActive() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetWidth(msg.Width)
		a.help.Width = msg.Width
		var cmd tea.Cmd
		a.historyView, cmd = a.historyView.Update(tea.WindowSizeMsg{Width: msg.Width - 4, Height: a.contentHeight()})
		return &a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case form.SubmitMsg:
		return a.startResolve(msg.Query)

	case spinner.TickMsg:
		if !a.resolving {
			return &a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return &a, cmd

	case ui.ResolvedMsg:
		if msg.Seq != a.seq {
			return &a, nil
		}
		a.resolving = false
		a.cancel = nil
		if msg.Err != nil {
			a.state.ResolvedURI = ""
			a.state.LastError = asResolverError(msg.Err)
			a.setStatus(msg.Err.Error(), true)
		} else {
			a.state.ResolvedURI = msg.Artifact.DownloadURI
			a.state.LastError = nil
			a.setStatus(fmt.Sprintf("Build found for %s @ %s: o to download, p/n to record result",
				msg.Query.Device, shortSHA(msg.Query.CommitHash)), false)
		}
		return &a, nil

	case ui.HistoryRecordedMsg:
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
			return &a, nil
		}
		a.setStatus(fmt.Sprintf("Recorded: %s", msg.Entry), false)
		if a.showHistory {
			return &a, a.loadHistory()
		}
		return &a, nil

	case ui.HistoryClearedMsg:
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
			return &a, nil
		}
		a.historyView.SetLines(nil)
		a.setStatus("History cleared", false)
		return &a, nil

	case ui.HistoryLoadedMsg:
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Error loading history: %v", msg.Err), true)
			a.historyView.SetLines(nil)
			return &a, nil
		}
		a.historyView.SetLines(msg.Lines)
		a.setStatus(fmt.Sprintf("%d history entries", a.historyView.Len()), false)
		return &a, nil

	case ui.BrowserOpenedMsg:
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Error opening browser: %v", msg.Err), true)
		} else {
			a.setStatus(fmt.Sprintf("Opened %s in browser", msg.URL), false)
		}
		return &a, nil

	case ui.ClipboardMsg:
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
			return &a, nil
		}
		a.form.SetCommit(msg.Text)
		a.setStatus("Pasted commit from clipboard", false)
		return &a, nil

	case confirm.ResultMsg:
		if msg.Confirmed && msg.Action == actionClearHistory {
			return &a, a.clearHistory()
		}
		return &a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return &a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.abandon()
		return &a, tea.Quit
	}

	if a.showHelp {
		a.showHelp = false
		return &a, nil
	}

	if a.showHistory {
		if !a.historyView.IsSearching() {
			switch msg.String() {
			case "esc", "h", "q":
				a.showHistory = false
				return &a, nil
			case "X":
				return a.askClearHistory()
			}
		}
		var cmd tea.Cmd
		a.historyView, cmd = a.historyView.Update(msg)
		return &a, cmd
	}

	if a.form.Editing() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return &a, cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Quit):
		a.abandon()
		return &a, tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return &a, nil
	case key.Matches(msg, ui.Keys.Run):
		return a.startResolve(a.form.Query())
	case key.Matches(msg, ui.Keys.Download):
		return a.openDownload()
	case key.Matches(msg, ui.Keys.Repro):
		return a.recordVerdict(model.VerdictRepro)
	case key.Matches(msg, ui.Keys.NotRepro):
		return a.recordVerdict(model.VerdictNotRepro)
	case key.Matches(msg, ui.Keys.Paste):
		return &a, a.paste()
	case key.Matches(msg, ui.Keys.ClearCommit):
		a.abandon()
		a.form.ClearCommit()
		a.state = State{}
		a.setStatus("Commit cleared", false)
		return &a, nil
	case key.Matches(msg, ui.Keys.ClearHistory):
		return a.askClearHistory()
	case key.Matches(msg, ui.Keys.History):
		a.showHistory = true
		a.historyView.SetLoading()
		return &a, a.loadHistory()
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return &a, cmd
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func asResolverError(err error) *resolver.Error {
	if re := resolver.AsError(err); re != nil {
		return re
	}
	return &resolver.Error{Kind: resolver.KindTransport, Err: err}
}

func shortSHA(sha string) string {
	if len(sha) > 10 {
		return sha[:10]
	}
	return sha
}

// --- View ---

func (a App) contentHeight() int {
	h := a.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := RenderHeader(a.serverHost(), a.deps.History.Path(), a.width)

	var content string
	switch {
	case a.confirmDialog.IsActive():
		content = lipgloss.Place(a.width, a.contentHeight(), lipgloss.Center, lipgloss.Center, a.confirmDialog.View())
	case a.showHelp:
		content = a.renderHelp()
	case a.showHistory:
		style := ui.StylePaneFocused.Width(a.width - 2).Height(a.contentHeight() - 2)
		content = style.Render(a.historyView.View())
	default:
		content = a.renderMain()
	}

	status := a.status
	if a.resolving {
		status = a.spinner.View() + " " + status
	}
	bar := RenderStatusBar(status, a.contextHints(), a.statusErr, a.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, bar)
}

func (a App) renderMain() string {
	formPane := ui.StylePaneFocused.Width(a.width - 2).Render(a.form.View())

	var result string
	switch {
	case a.resolving:
		result = ui.StyleInfo.Render("Searching...")
	case a.state.Resolved():
		result = ui.StyleSuccess.Render(a.state.ResolvedURI)
	case a.state.LastError != nil:
		result = ui.StyleFailure.Render(a.state.LastError.Error())
	default:
		result = ui.StyleMuted.Render("Run a lookup to find a build")
	}

	resolved := a.state.Resolved()
	download := ui.Button("Download", false)
	if resolved {
		download = ui.StyleButtonReady.Render("Download")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		download, " ",
		ui.Button("Repro", resolved), " ",
		ui.Button("Not Repro", resolved),
	)

	label := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	body := fmt.Sprintf("%s\n%s\n\n%s", label.Render("Result"), result, buttons)
	resultPane := ui.StylePane.Width(a.width - 2).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, formPane, resultPane)
}

func (a App) renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Keys") + "\n\n")
	b.WriteString(a.help.FullHelpView(ui.Keys.FullHelp()))
	b.WriteString("\n\n" + bold.Render("  History pane") + "\n\n")
	b.WriteString("  /  search   n/N  next/prev match   g/G  top/bottom   X  clear   esc  back\n")
	b.WriteString("\n" + ui.StyleMuted.Render("  Press any key to close") + "\n")

	style := ui.StylePaneFocused.Width(a.width - 2).Height(a.contentHeight() - 2)
	return style.Render(b.String())
}

func (a App) contextHints() string {
	switch {
	case a.confirmDialog.IsActive():
		return "y/n:answer  tab:toggle  esc:cancel"
	case a.showHelp:
		return "any key:close"
	case a.showHistory:
		if a.historyView.IsSearching() {
			return "enter:confirm  esc:cancel"
		}
		return "/:search  n/N:match  g/G:top/bot  X:clear  esc:back"
	case a.form.Editing():
		return "enter:next/run  tab:next field  esc:leave field"
	}
	return "r:run  o:download  p:repro  n:not repro  v:paste  c:clear  h:history  ?:help  q:quit"
}

func (a App) serverHost() string {
	u, err := url.Parse(a.cfg.ServerURL)
	if err != nil || u.Host == "" {
		return a.cfg.ServerURL
	}
	return u.Host
}
