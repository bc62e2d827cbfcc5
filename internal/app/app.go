// Package app is the terminal editor that hosts the hotbar plugin.
package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chatter/hotbar/internal/fswatch"
	"github.com/chatter/hotbar/internal/hotbar"
	"github.com/chatter/hotbar/internal/logger"
	"github.com/chatter/hotbar/internal/ui"
	"github.com/chatter/hotbar/internal/ui/help"
	"github.com/chatter/hotbar/internal/vcs"
	"github.com/chatter/hotbar/internal/workspace"
)

const (
	// wheelLines is how far one wheel notch scrolls the editor.
	wheelLines = 3

	// debounce is how long to wait after a change before reading the file.
	debounce = 100 * time.Millisecond
)

// Model is the main application model
type Model struct {
	// Core state
	version string
	keys    KeyMap
	log     *logger.Logger

	// Host and plugin
	ws     *workspace.Workspace
	plugin *hotbar.Plugin

	// External state
	watcher *fswatch.Watcher
	branch  string

	// View state
	showHelp bool
	message  string
	tooltip  string

	// Panels
	editorPanel *ui.EditorPanel

	// Help
	statusBar    *help.StatusBar
	floatingHelp *help.FloatingHelp

	// Window size
	width  int
	height int
}

// New creates the application model. The plugin must already be active in ws.
func New(ws *workspace.Workspace, plugin *hotbar.Plugin, version string, log *logger.Logger) Model {
	keys := DefaultKeyMap()

	editorPanel := ui.NewEditorPanel()
	editorPanel.SetBuffer(ws.Buffer())

	return Model{
		version:      version,
		keys:         keys,
		log:          log.With("component", "app"),
		ws:           ws,
		plugin:       plugin,
		editorPanel:  editorPanel,
		statusBar:    help.NewStatusBar("hotbar " + version),
		floatingHelp: help.NewFloatingHelp(keys.Help.Help().Key),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startWatcher(),
		m.loadBranch(),
	)
}

// startWatcher starts watching the open file
func (m Model) startWatcher() tea.Cmd {
	path := m.ws.Path()
	if path == "" {
		return nil
	}

	return func() tea.Msg {
		watcher, err := fswatch.NewWatcher(path, m.log)
		return watcherStartedMsg{watcher: watcher, err: err}
	}
}

// waitForChange waits for the open file to change on disk
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	events := m.watcher.Events()
	path := m.watcher.Path()

	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		time.Sleep(debounce)
		return fswatch.ChangedMsg{Path: path}
	}
}

// loadBranch reads the git branch of the open file's directory
func (m Model) loadBranch() tea.Cmd {
	dir := "."
	if path := m.ws.Path(); path != "" {
		dir = filepath.Dir(path)
	}

	return func() tea.Msg {
		branch, err := vcs.Branch(dir)
		if err != nil {
			m.log.Debug("no branch for status bar", "dir", dir, "err", err)
			return branchMsg{}
		}
		return branchMsg{name: branch}
	}
}

// Message types
type watcherStartedMsg struct {
	watcher *fswatch.Watcher
	err     error
}

type branchMsg struct {
	name string
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// When help modal is open, only handle the help and close keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Close) {
				m.showHelp = false
			}
			return m, nil
		}

		m.message = ""

		if newModel, cmd := dispatchKey(&m, msg, m.globalBindings()); newModel != nil {
			m = *newModel
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			m.editorPanel.HandleKey(msg)
		}

	case tea.MouseClickMsg:
		m.handleClick(msg)

	case tea.MouseMotionMsg:
		m.handleMotion(msg)

	case tea.MouseWheelMsg:
		m.handleWheel(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case watcherStartedMsg:
		if msg.err != nil {
			m.log.Warn("file watcher disabled", "err", msg.err)
			break
		}
		m.watcher = msg.watcher
		cmds = append(cmds, m.waitForChange())

	case fswatch.ChangedMsg:
		m.handleExternalChange(msg.Path)
		cmds = append(cmds, m.waitForChange())

	case branchMsg:
		m.branch = msg.name
	}

	return m, tea.Batch(cmds...)
}

// handleExternalChange reloads the buffer when the file changed on disk and
// the buffer has no unsaved edits.
func (m *Model) handleExternalChange(path string) {
	buf := m.ws.Buffer()
	if buf == nil {
		return
	}

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m.message = "File was removed on disk"
		return
	case err != nil:
		m.log.Warn("reading changed file", "path", path, "err", err)
		return
	}

	// Our own save.
	if string(content) == buf.Text() {
		return
	}

	if buf.Modified() {
		m.message = "File changed on disk; " + m.keys.Save.Help().Key + " overwrites it"
		m.log.Info("external change with unsaved edits", "path", path)
		return
	}

	buf.Reset(string(content))
	m.editorPanel.ScrollToCursor()
	m.message = "Reloaded from disk"
	m.log.Info("buffer reloaded", "path", path)
}

// Action methods for keybindings

func (m *Model) actionQuit() (Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	return *m, tea.Quit
}

func (m *Model) actionSave() (Model, tea.Cmd) {
	buf, path := m.ws.Buffer(), m.ws.Path()
	switch {
	case buf == nil:
		return *m, nil
	case path == "":
		m.message = "Scratch buffer has no file name"
		return *m, nil
	}

	if err := buf.Save(path); err != nil {
		m.log.Error("save failed", "path", path, "err", err)
		m.message = "Save failed: " + err.Error()
		return *m, nil
	}

	m.log.Info("buffer saved", "path", path)
	m.message = "Saved " + filepath.Base(path)
	return *m, nil
}

func (m *Model) actionSwitch() (Model, tea.Cmd) {
	m.ws.ExecuteCommand(hotbar.SwitchCommand)
	m.tooltip = ""
	return *m, nil
}

func (m *Model) actionPress(i int) (Model, tea.Cmd) {
	if bar, ok := m.hotbar(); ok {
		bar.Press(i)
		m.editorPanel.ScrollToCursor()
	}
	return *m, nil
}

func (m *Model) actionUndo() (Model, tea.Cmd) {
	m.ws.ExecuteCommand("editor:undo")
	m.editorPanel.ScrollToCursor()
	return *m, nil
}

func (m *Model) actionRedo() (Model, tea.Cmd) {
	m.ws.ExecuteCommand("editor:redo")
	m.editorPanel.ScrollToCursor()
	return *m, nil
}

func (m *Model) actionToggleHelp() (Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return *m, nil
}

// activeHelpBindings returns all display bindings.
func (m *Model) activeHelpBindings() []help.HelpBinding {
	bindings := ToHelpBindings(m.globalBindings())
	return append(bindings, m.editorPanel.KeyMap().HelpBindings()...)
}

// globalBindings returns the app-level keybindings with their actions.
func (m *Model) globalBindings() []ActionBinding {
	bindings := []ActionBinding{
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Switch,
				Category: help.CategoryHotbar,
				Order:    1,
				Pinned:   true,
			},
			Action: (*Model).actionSwitch,
		},
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Save,
				Category: help.CategoryEditing,
				Order:    3,
			},
			Action: (*Model).actionSave,
		},
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Undo,
				Category: help.CategoryEditing,
				Order:    4,
			},
			Action: (*Model).actionUndo,
		},
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Redo,
				Category: help.CategoryEditing,
				Order:    5,
			},
			Action: (*Model).actionRedo,
		},
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Help,
				Category: help.CategoryGeneral,
				Order:    98,
				Pinned:   true,
			},
			Action: (*Model).actionToggleHelp,
		},
		{
			HelpBinding: help.HelpBinding{
				Binding:  m.keys.Quit,
				Category: help.CategoryGeneral,
				Order:    99,
				Pinned:   true,
			},
			Action: (*Model).actionQuit,
		},
	}

	for i, b := range m.keys.Press {
		bindings = append(bindings, ActionBinding{
			HelpBinding: help.HelpBinding{
				Binding:  b,
				Category: help.CategoryHotbar,
				Order:    2,
			},
			Action: func(m *Model) (Model, tea.Cmd) { return m.actionPress(i) },
		})
	}

	return bindings
}

// hotbar returns the bar the plugin renders into.
func (m *Model) hotbar() (*workspace.Bar, bool) {
	for _, slot := range []hotbar.Slot{hotbar.SlotBottom, hotbar.SlotTop} {
		if bar, ok := m.ws.Bar(slot); ok {
			return bar, true
		}
	}
	return nil, false
}

// layout describes which screen row holds what.
type layout struct {
	topBar    int // -1 when absent
	editorTop int
	editorH   int
	bottomBar int // -1 when absent
	status    int
}

func (m *Model) layout() layout {
	l := layout{topBar: -1, bottomBar: -1}

	row := 0
	if _, ok := m.ws.Bar(hotbar.SlotTop); ok {
		l.topBar = row
		row++
	}

	bars := row
	if _, ok := m.ws.Bar(hotbar.SlotBottom); ok {
		bars++
	}

	l.editorTop = row
	l.editorH = max(0, m.height-bars-1)
	row += l.editorH

	if _, ok := m.ws.Bar(hotbar.SlotBottom); ok {
		l.bottomBar = row
		row++
	}
	l.status = row

	return l
}

// barAt returns the bar on screen row y.
func (m *Model) barAt(y int) (*workspace.Bar, bool) {
	l := m.layout()
	switch y {
	case l.topBar:
		return m.ws.Bar(hotbar.SlotTop)
	case l.bottomBar:
		return m.ws.Bar(hotbar.SlotBottom)
	}
	return nil, false
}

func (m *Model) handleClick(msg tea.MouseClickMsg) {
	if msg.Button != tea.MouseLeft || m.showHelp {
		return
	}

	if bar, ok := m.barAt(msg.Y); ok {
		bar.ClickAt(msg.X)
		m.editorPanel.ScrollToCursor()
		return
	}

	l := m.layout()
	if msg.Y >= l.editorTop && msg.Y < l.editorTop+l.editorH {
		m.editorPanel.ClickAt(msg.X, msg.Y-l.editorTop)
	}
}

func (m *Model) handleMotion(msg tea.MouseMotionMsg) {
	for _, slot := range []hotbar.Slot{hotbar.SlotTop, hotbar.SlotBottom} {
		if bar, ok := m.ws.Bar(slot); ok {
			bar.ClearHover()
		}
	}
	m.tooltip = ""

	if bar, ok := m.barAt(msg.Y); ok {
		if tip, hit := bar.HoverAt(msg.X); hit {
			m.tooltip = tip
		}
	}
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) {
	delta := 0
	switch msg.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return
	}

	if bar, ok := m.barAt(msg.Y); ok {
		bar.Scroll(delta)
		return
	}
	m.editorPanel.Scroll(delta * wheelLines)
}

func (m *Model) updateSizes() {
	for _, slot := range []hotbar.Slot{hotbar.SlotTop, hotbar.SlotBottom} {
		if bar, ok := m.ws.Bar(slot); ok {
			bar.SetWidth(m.width)
		}
	}
	m.editorPanel.SetSize(m.width, m.layout().editorH)
}

// View renders the application
func (m Model) View() tea.View {
	var content string
	if m.width == 0 || m.height == 0 {
		content = "Loading..."
	} else {
		content = m.render()
	}

	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m Model) render() string {
	// Bars may have been attached or switched since the last resize.
	m.updateSizes()

	var rows []string
	if bar, ok := m.ws.Bar(hotbar.SlotTop); ok {
		rows = append(rows, bar.View())
	}
	if m.layout().editorH > 0 {
		rows = append(rows, m.editorPanel.View())
	}
	if bar, ok := m.ws.Bar(hotbar.SlotBottom); ok {
		rows = append(rows, bar.View())
	}
	rows = append(rows, m.renderStatusBar())

	base := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.showHelp {
		return m.renderWithOverlay(base)
	}
	return base
}

func (m Model) renderWithOverlay(base string) string {
	modalWidth := m.width * 80 / 100
	modalHeight := m.height * 70 / 100

	if modalWidth < 40 {
		modalWidth = min(40, m.width-4)
	}
	if modalHeight < 10 {
		modalHeight = min(10, m.height-4)
	}

	m.floatingHelp.SetSize(modalWidth, modalHeight)
	m.floatingHelp.SetBindings(m.activeHelpBindings())
	modal := m.floatingHelp.View()

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderStatusBar() string {
	m.statusBar.SetWidth(m.width)
	m.statusBar.SetBindings(m.activeHelpBindings())

	if m.tooltip != "" {
		m.statusBar.SetMessage(m.tooltip)
	} else {
		m.statusBar.SetMessage(m.message)
	}

	m.statusBar.SetInfo(m.fileLabel(), m.profileName(), m.branch)
	return m.statusBar.View()
}

func (m Model) fileLabel() string {
	buf := m.ws.Buffer()
	if buf == nil {
		return ""
	}

	name := filepath.Base(m.ws.Path())
	if m.ws.Path() == "" {
		name = "[scratch]"
	}
	if buf.Modified() {
		name += " ●"
	}
	return name
}

func (m Model) profileName() string {
	if m.plugin == nil || m.plugin.Controller() == nil {
		return ""
	}
	return m.plugin.Controller().Profile().Name
}
