package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/ci-downloader/internal/model"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func newForm() Model {
	m := New([]string{"austin", "camden"}, []string{"tcl-tcl", "his-his"})
	m.FocusCommit()
	return m
}

func TestSTBQueryHasNoBrand(t *testing.T) {
	m := newForm()
	m, _ = update(t, m, runes("f00d"), keyEsc, runes("k"), keyEnter, runes("camden"), keyEnter)

	if !m.Editing() {
		t.Fatal("enter in device field should move on to the commit field")
	}
	m, cmd := update(t, m, keyEnter)
	if cmd == nil {
		t.Fatal("enter in commit field should submit")
	}
	sub, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	want := model.SearchQuery{Device: "camden", CommitHash: "f00d"}
	if sub.Query != want {
		t.Errorf("Query = %+v, want %+v", sub.Query, want)
	}
	if m.Editing() {
		t.Error("submitting should leave the field")
	}
}

func TestTVModeBrandPicker(t *testing.T) {
	m := newForm()
	m.SetCommit(" abc \n")
	m, _ = update(t, m, keyEsc)

	// commit -> device -> type (brand is skipped in STB mode)
	m, _ = update(t, m, runes("k"), runes("k"))
	if m.focused != fieldType {
		t.Fatalf("focused = %v, want type field", m.focused)
	}
	m, _ = update(t, m, keyEnter)
	if m.DeviceType() != model.DeviceTV {
		t.Fatal("enter on type field should switch to TV")
	}
	if got := m.Query().BrandFilter; got != "" {
		t.Errorf("no brand picked yet, BrandFilter = %q", got)
	}

	// type -> device -> brand now that TV is selected
	m, _ = update(t, m, runes("j"), runes("j"))
	if m.focused != fieldBrand {
		t.Fatalf("focused = %v, want brand field", m.focused)
	}
	m, _ = update(t, m, keyEnter, keyEnter)
	if got := m.Query().BrandFilter; got != "his-his" {
		t.Errorf("BrandFilter = %q, want his-his", got)
	}
	if got := m.Query().CommitHash; got != "abc" {
		t.Errorf("CommitHash = %q, want trimmed abc", got)
	}

	m, _ = update(t, m, keyEnter)
	if m.Brand() != "" {
		t.Errorf("cycling past the last brand should return to any, got %q", m.Brand())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Brand() != "his-his" {
		t.Errorf("left from any should wrap to the last brand, got %q", m.Brand())
	}
}

func TestBrandIgnoredInSTBMode(t *testing.T) {
	m := newForm()
	m.brandIdx = 0
	if got := m.Query().BrandFilter; got != "" {
		t.Errorf("STB query BrandFilter = %q, want empty", got)
	}
	m.toggleType()
	if got := m.Query().BrandFilter; got != "tcl-tcl" {
		t.Errorf("TV query BrandFilter = %q, want tcl-tcl", got)
	}
}

func TestClearCommit(t *testing.T) {
	m := newForm()
	m, _ = update(t, m, runes("deadbeef"))
	m.ClearCommit()
	if m.Commit() != "" {
		t.Errorf("Commit() = %q, want empty", m.Commit())
	}
}

func TestViewShowsFields(t *testing.T) {
	view := newForm().View()
	for _, want := range []string{"Device type:", "Device:", "TV brand:", "Commit:", "n/a (STB)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
