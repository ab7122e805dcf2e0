package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/tarih/internal/config"
)

func testModel() model {
	return initialModel(&config.Config{DataDir: "/tmp/tarih-test"})
}

func TestInitialModel_ListFocused(t *testing.T) {
	m := testModel()

	if m.searching {
		t.Error("expected searching=false on init, got true")
	}
	if m.keywordInput.Focused() {
		t.Error("expected keyword input blurred on init, got focused")
	}
	if m.tab != tabKeyword {
		t.Errorf("expected keyword tab on init, got %d", m.tab)
	}
}

func TestUpdate_SlashFocusesSearch(t *testing.T) {
	m := testModel()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = newModel.(model)

	if !m.searching {
		t.Error("expected searching=true after pressing /, got false")
	}
	if !m.keywordInput.Focused() {
		t.Error("expected keyword input focused after pressing /")
	}
}

func TestUpdate_EscUnfocusesSearch(t *testing.T) {
	m := testModel()
	m.searching = true
	m.keywordInput.Focus()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = newModel.(model)

	if m.searching {
		t.Error("expected searching=false after pressing Esc, got true")
	}
	if m.keywordInput.Focused() {
		t.Error("expected keyword input blurred after pressing Esc")
	}
}

func TestUpdate_TabCyclesTabs(t *testing.T) {
	m := testModel()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(model)
	if m.tab != tabDate {
		t.Errorf("expected date tab after Tab, got %d", m.tab)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(model)
	if m.tab != tabFavorites {
		t.Errorf("expected favorites tab after second Tab, got %d", m.tab)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(model)
	if m.tab != tabKeyword {
		t.Errorf("expected keyword tab after third Tab, got %d", m.tab)
	}
}

func TestUpdate_EmptyKeywordShowsValidation(t *testing.T) {
	m := testModel()
	m.searching = true
	m.keywordInput.Focus()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(model)

	if m.errMsg != msgEmptyKeyword {
		t.Errorf("errMsg = %q, want %q", m.errMsg, msgEmptyKeyword)
	}
	if m.loading {
		t.Error("expected no search issued for empty keyword")
	}
}

func TestUpdate_SearchFailureReplacesResults(t *testing.T) {
	m := testModel()
	m.setEvents(nil)

	newModel, _ := m.Update(searchMsg{err: assertErr{}})
	m = newModel.(model)

	if m.errMsg != msgRequestFailed {
		t.Errorf("errMsg = %q, want %q", m.errMsg, msgRequestFailed)
	}
	if len(m.list.Items()) != 0 {
		t.Error("expected no partial results after a failed search")
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestParseDayMonth(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantMonth int
		wantDay   int
		wantErr   bool
	}{
		{name: "valid", in: "29.05", wantMonth: 5, wantDay: 29},
		{name: "no padding", in: "1.1", wantMonth: 1, wantDay: 1},
		{name: "bad month", in: "10.13", wantErr: true},
		{name: "bad day", in: "32.01", wantErr: true},
		{name: "garbage", in: "yarın", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			month, day, err := parseDayMonth(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseDayMonth(%q): expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDayMonth(%q): %v", tc.in, err)
			}
			if month != tc.wantMonth || day != tc.wantDay {
				t.Errorf("got %d/%d, want %d/%d", month, day, tc.wantMonth, tc.wantDay)
			}
		})
	}
}

func TestParseDayMonthEmptyMeansToday(t *testing.T) {
	month, day, err := parseDayMonth("")
	if err != nil {
		t.Fatalf("parseDayMonth(empty): %v", err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		t.Errorf("got %d/%d, want today's date", month, day)
	}
}
