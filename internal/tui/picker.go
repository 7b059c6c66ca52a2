package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brochure/internal/theme"
	viewtheme "brochure/internal/views/theme"
)

// ThemeMsg carries a theme the store just applied.
type ThemeMsg struct {
	Active theme.ActiveTheme
}

// ErrMsg reports a failed preset change.
type ErrMsg struct {
	Err error
}

var (
	cursorStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
)

// Picker is the Bubbletea model of the preset picker. It follows the store
// through a subscription, so the view re-renders on every applied theme,
// whoever caused the switch.
type Picker struct {
	ctx          context.Context
	store        *theme.Store
	presets      []string
	cursor       int
	active       theme.ActiveTheme
	preferSystem bool
	err          error
	quitting     bool

	updates     chan theme.ActiveTheme
	unsubscribe func()
}

// NewPicker builds a picker for an initialized store. Close releases the
// store subscription.
func NewPicker(ctx context.Context, store *theme.Store) *Picker {
	p := &Picker{
		ctx:          ctx,
		store:        store,
		presets:      store.Presets(),
		preferSystem: store.PreferSystem(),
		updates:      make(chan theme.ActiveTheme, 1),
	}
	if active, ok := store.Active(); ok {
		p.active = active
		for i, name := range p.presets {
			if name == active.Preset {
				p.cursor = i
			}
		}
	}
	p.unsubscribe = store.Subscribe(func(active theme.ActiveTheme) {
		offerLatest(p.updates, active)
	})
	return p
}

// offerLatest replaces any theme still waiting in updates with active, so
// the view never falls behind the store.
func offerLatest(updates chan theme.ActiveTheme, active theme.ActiveTheme) {
	for {
		select {
		case updates <- active:
			return
		default:
		}
		select {
		case <-updates:
		default:
		}
	}
}

// Close drops the store subscription.
func (p *Picker) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

// Init waits for the first theme change.
func (p *Picker) Init() tea.Cmd {
	return p.waitForTheme()
}

func (p *Picker) waitForTheme() tea.Cmd {
	updates, done := p.updates, p.ctx.Done()
	return func() tea.Msg {
		select {
		case active := <-updates:
			return ThemeMsg{Active: active}
		case <-done:
			return nil
		}
	}
}

// apply runs off the subscriber goroutine since subscribers must not switch
// presets themselves.
func (p *Picker) apply(change func(context.Context) error) tea.Cmd {
	ctx := p.ctx
	return func() tea.Msg {
		if err := change(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return nil
	}
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThemeMsg:
		p.active = msg.Active
		p.err = nil
		return p, p.waitForTheme()
	case ErrMsg:
		p.err = msg.Err
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.quitting = true
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.presets)-1 {
				p.cursor++
			}
		case "enter", " ":
			if len(p.presets) == 0 {
				return p, nil
			}
			name := p.presets[p.cursor]
			return p, p.apply(func(ctx context.Context) error { return p.store.SetPreset(ctx, name) })
		case "t":
			return p, p.apply(p.store.Toggle)
		case "s":
			p.preferSystem = !p.preferSystem
			enabled := p.preferSystem
			return p, p.apply(func(ctx context.Context) error { return p.store.SetPreferSystem(ctx, enabled) })
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	if p.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Theme presets"))
	b.WriteString("\n\n")
	for i, name := range p.presets {
		cursor := "  "
		if i == p.cursor {
			cursor = cursorStyle.Render("> ")
		}
		marker := " "
		if name == p.active.Preset {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, marker, viewtheme.Label(name))
	}
	b.WriteString("\n")
	if p.active.Preset != "" {
		b.WriteString(Swatches(p.active))
	}
	if p.err != nil {
		var unknown *theme.UnknownPresetError
		msg := p.err.Error()
		if errors.As(p.err, &unknown) {
			msg = fmt.Sprintf("no preset %q", unknown.Name)
		}
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	system := "off"
	if p.preferSystem {
		system = "on"
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("enter apply  t toggle  s follow system (%s)  q quit", system)))
	b.WriteString("\n")
	return b.String()
}

// Run starts the picker on the terminal and blocks until the user quits.
func Run(ctx context.Context, store *theme.Store, opts ...tea.ProgramOption) error {
	picker := NewPicker(ctx, store)
	defer picker.Close()
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(picker, opts...).Run()
	return err
}
