package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/tarih/internal/audio"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/event"
	"github.com/user/tarih/internal/favorites"
	"github.com/user/tarih/internal/playback"
	"github.com/user/tarih/internal/speech"
	"github.com/user/tarih/internal/wiki"
)

const (
	tabKeyword = iota
	tabDate
	tabFavorites
)

const (
	msgEmptyKeyword  = "Lütfen bir arama terimi giriniz."
	msgRequestFailed = "Veriler çekilirken bir hata oluştu. Lütfen bağlantınızı kontrol edin."
	msgBadDate       = "Geçersiz tarih. GG.AA biçiminde giriniz (örn: 29.05)."
	msgNoResults     = "Sonuç bulunamadı."
)

type model struct {
	cfg    *config.Config
	client *wiki.Client
	favs   *favorites.Store
	synth  speech.Synthesizer
	device audio.Device

	tab          int
	keywordInput textinput.Model
	dateInput    textinput.Model
	list         list.Model
	spinner      spinner.Model

	events      []event.Event
	controllers map[string]*playback.Controller

	width     int
	height    int
	searching bool
	loading   bool
	detail    bool
	errMsg    string
	alert     string
	err       error
}

type eventItem struct {
	event event.Event
	fav   bool
	state playback.State
}

func (i eventItem) Title() string {
	var b strings.Builder
	if i.event.Year != event.YearUnknown {
		b.WriteString(i.event.Year)
		b.WriteString(" · ")
	}
	b.WriteString(i.event.Title)
	if i.fav {
		b.WriteString(" ★")
	}
	switch i.state {
	case playback.StateLoading:
		b.WriteString(" [ses hazırlanıyor]")
	case playback.StatePlaying:
		b.WriteString(" [♪]")
	}
	return b.String()
}

func (i eventItem) Description() string {
	summary := i.event.Summary
	if len([]rune(summary)) > 80 {
		summary = string([]rune(summary)[:80]) + "..."
	}
	return summary
}

func (i eventItem) FilterValue() string {
	return i.event.Title + " " + i.event.Summary
}

func initialModel(cfg *config.Config) model {
	ki := textinput.New()
	ki.Placeholder = "Örn: Fransız İhtilali, İstanbul'un Fethi..."
	ki.CharLimit = 256
	ki.Width = 50

	di := textinput.New()
	di.Placeholder = time.Now().Format("02.01")
	di.CharLimit = 5
	di.Width = 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tarih Kâşifi"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return model{
		cfg:          cfg,
		client:       wiki.NewClient(cfg.Wiki.Language),
		device:       audio.NewOutputDevice(),
		tab:          tabKeyword,
		keywordInput: ki,
		dateInput:    di,
		list:         l,
		spinner:      sp,
		controllers:  make(map[string]*playback.Controller),
	}
}

type initMsg struct {
	favs  *favorites.Store
	synth speech.Synthesizer
	err   error
}

type searchMsg struct {
	events []event.Event
	err    error
}

type speakMsg struct {
	id  string
	err error
}

type playbackTickMsg struct{}

func (m model) Init() tea.Cmd {
	return m.initStores
}

func (m model) initStores() tea.Msg {
	storage, err := favorites.NewSQLiteStorage(m.cfg.DataDir)
	if err != nil {
		return initMsg{err: err}
	}

	favs := favorites.NewStore(storage)
	favs.Load()

	// A missing speech key only disables read-aloud; search still works.
	synth, err := speech.New(m.cfg)
	if err != nil {
		synth = nil
	}

	return initMsg{favs: favs, synth: synth}
}

func (m model) doKeywordSearch(term string) tea.Cmd {
	return func() tea.Msg {
		events, err := m.client.SearchByKeyword(context.Background(), term)
		return searchMsg{events: events, err: err}
	}
}

func (m model) doDateSearch(month, day int) tea.Cmd {
	return func() tea.Msg {
		events, err := m.client.SearchByDate(context.Background(), month, day)
		return searchMsg{events: events, err: err}
	}
}

func (m *model) controllerFor(id string) *playback.Controller {
	if ctl, ok := m.controllers[id]; ok {
		return ctl
	}
	ctl := playback.NewController(m.synth, m.device)
	m.controllers[id] = ctl
	return ctl
}

func speakCmd(id string, ctl *playback.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		err := ctl.Toggle(context.Background(), text)
		return speakMsg{id: id, err: err}
	}
}

func playbackTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return playbackTickMsg{}
	})
}

func (m *model) disposeControllers() {
	for id, ctl := range m.controllers {
		ctl.Dispose()
		delete(m.controllers, id)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.disposeControllers()
			return m, tea.Quit
		case "q":
			if !m.searching {
				m.disposeControllers()
				return m, tea.Quit
			}
		case "esc":
			if m.searching {
				m.searching = false
				m.blurInputs()
			}
		case "tab":
			if !m.searching {
				return m.switchTab((m.tab + 1) % 3)
			}
		case "1":
			if !m.searching {
				return m.switchTab(tabKeyword)
			}
		case "2":
			if !m.searching {
				return m.switchTab(tabDate)
			}
		case "3":
			if !m.searching {
				return m.switchTab(tabFavorites)
			}
		case "/":
			if !m.searching && m.tab != tabFavorites {
				m.searching = true
				m.alert = ""
				return m, m.focusInput()
			}
		case "enter":
			if m.searching {
				m.searching = false
				m.blurInputs()
				return m.startSearch()
			}
			m.detail = !m.detail
			return m, nil
		case "j", "down":
			if !m.searching {
				m.list.CursorDown()
				return m, nil
			}
		case "k", "up":
			if !m.searching {
				m.list.CursorUp()
				return m, nil
			}
		case "f":
			if !m.searching {
				return m.toggleFavorite()
			}
		case "s":
			if !m.searching {
				return m.speakSelected()
			}
		case "o":
			if !m.searching {
				if item, ok := m.list.SelectedItem().(eventItem); ok && item.event.Link != "#" {
					openBrowser(item.event.Link)
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-12)
		m.keywordInput.Width = msg.Width - 20

	case initMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.favs = msg.favs
		m.synth = msg.synth

	case searchMsg:
		m.loading = false
		if msg.err != nil {
			// No partial results: the list is replaced by the message.
			m.errMsg = msgRequestFailed
			m.events = nil
			m.list.SetItems(nil)
			return m, nil
		}
		m.errMsg = ""
		if len(msg.events) == 0 {
			m.errMsg = msgNoResults
		}
		m.setEvents(msg.events)

	case speakMsg:
		if msg.err != nil {
			m.alert = msg.err.Error()
		}
		m.refreshItems()
		return m, playbackTick()

	case playbackTickMsg:
		m.refreshItems()
		if m.anyPlaybackActive() {
			return m, playbackTick()
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.searching {
		var cmd tea.Cmd
		switch m.tab {
		case tabKeyword:
			m.keywordInput, cmd = m.keywordInput.Update(msg)
		case tabDate:
			m.dateInput, cmd = m.dateInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	} else {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) switchTab(tab int) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.errMsg = ""
	m.alert = ""
	if tab == tabFavorites && m.favs != nil {
		m.setEvents(m.favs.List())
	}
	return m, nil
}

func (m model) startSearch() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabKeyword:
		term := strings.TrimSpace(m.keywordInput.Value())
		if term == "" {
			m.errMsg = msgEmptyKeyword
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.doKeywordSearch(term))
	case tabDate:
		month, day, err := parseDayMonth(m.dateInput.Value())
		if err != nil {
			m.errMsg = msgBadDate
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.doDateSearch(month, day))
	}
	return m, nil
}

func (m model) toggleFavorite() (tea.Model, tea.Cmd) {
	if m.favs == nil {
		return m, nil
	}
	item, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return m, nil
	}
	if _, err := m.favs.Toggle(item.event); err != nil {
		m.alert = "Favoriler kaydedilemedi: " + err.Error()
	}
	if m.tab == tabFavorites {
		m.setEvents(m.favs.List())
	} else {
		m.refreshItems()
	}
	return m, nil
}

func (m model) speakSelected() (tea.Model, tea.Cmd) {
	if m.synth == nil {
		m.alert = "Seslendirme için GEMINI_API_KEY gerekli."
		return m, nil
	}
	item, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return m, nil
	}
	m.alert = ""
	ctl := m.controllerFor(item.event.ID)
	return m, tea.Batch(speakCmd(item.event.ID, ctl, item.event.Summary), playbackTick())
}

func (m *model) setEvents(events []event.Event) {
	m.events = events
	m.refreshItems()
	m.list.Select(0)
}

func (m *model) refreshItems() {
	items := make([]list.Item, 0, len(m.events))
	for _, e := range m.events {
		item := eventItem{event: e}
		if m.favs != nil {
			item.fav = m.favs.Contains(e.ID)
		}
		if ctl, ok := m.controllers[e.ID]; ok {
			item.state = ctl.State()
		}
		items = append(items, item)
	}
	m.list.SetItems(items)
}

func (m model) anyPlaybackActive() bool {
	for _, ctl := range m.controllers {
		if ctl.State() != playback.StateIdle {
			return true
		}
	}
	return false
}

func (m *model) focusInput() tea.Cmd {
	switch m.tab {
	case tabKeyword:
		m.keywordInput.Focus()
	case tabDate:
		m.dateInput.Focus()
	}
	return textinput.Blink
}

func (m *model) blurInputs() {
	m.keywordInput.Blur()
	m.dateInput.Blur()
}

// parseDayMonth reads "GG.AA"; empty input means today.
func parseDayMonth(s string) (month, day int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now()
		return int(now.Month()), now.Day(), nil
	}

	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("geçersiz tarih: %s", s)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("geçersiz tarih: %s", s)
	}
	return month, day, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Hata: %v\n\nÇıkmak için q.", m.err)
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("178")).
		Bold(true)

	activeTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color("178")).
		Bold(true)

	inactiveTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	b.WriteString(titleStyle.Render("Tarih Kâşifi"))
	b.WriteString("  ")

	tabs := []string{"[1] Olay Ara", "[2] Tarihte Bugün", "[3] Favoriler"}
	for i, label := range tabs {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == m.tab {
			b.WriteString(activeTab.Render(label))
		} else {
			b.WriteString(inactiveTab.Render(label))
		}
	}
	b.WriteString("\n\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("178")).
		Padding(0, 1)

	switch m.tab {
	case tabKeyword:
		b.WriteString(inputStyle.Render(m.keywordInput.View()))
		b.WriteString("\n")
	case tabDate:
		b.WriteString(inputStyle.Render("Tarih (GG.AA): " + m.dateInput.View()))
		b.WriteString("\n")
	}

	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Aranıyor...\n")
	} else if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.detailView())
	}

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Uyarı: " + m.alert))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1)

	help := "[j/k]gezin [/]ara [Enter]özet/detay [f]avori [s]eslendir [o]bağlantı [Tab]sekme [q]çık"
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m model) detailView() string {
	item, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return ""
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(width)

	var text string
	if m.detail {
		text = item.event.Detail
		if item.event.Link != "#" {
			text += "\n\n" + item.event.Link
		}
	} else {
		text = "\"" + item.event.Summary + "\""
	}

	return boxStyle.Render(text)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		cmd.Start()
	}
}

// Run starts the TUI application
func Run(cfg *config.Config) error {
	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
