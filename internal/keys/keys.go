package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Focus
	FocusTags key.Binding
	Back      key.Binding
	Quit      key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Problem list
	NewProblem    key.Binding
	EditProblem   key.Binding
	DeleteProblem key.Binding
	Refresh       key.Binding
	Catalog       key.Binding

	// Tag panel
	Accept        key.Binding
	AddTag        key.Binding
	DeleteTag     key.Binding
	NextCandidate key.Binding
	PrevCandidate key.Binding
	NextChip      key.Binding
	PrevChip      key.Binding
	DetachTag     key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		FocusTags: key.NewBinding(
			key.WithKeys("/", "t"),
			key.WithHelp("/", "search tags"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NewProblem: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new problem"),
		),
		EditProblem: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit problem"),
		),
		DeleteProblem: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete problem"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "tag catalog"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "attach tag"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add tag"),
		),
		DeleteTag: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete tag"),
		),
		NextCandidate: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "tab"),
			key.WithHelp("↓/tab", "next match"),
		),
		PrevCandidate: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "shift+tab"),
			key.WithHelp("↑/shift+tab", "prev match"),
		),
		NextChip: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "next attached"),
		),
		PrevChip: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "prev attached"),
		),
		DetachTag: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "detach tag"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.FocusTags, k.Back,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusTags, k.Back, k.Quit},
		{k.NewProblem, k.EditProblem, k.DeleteProblem, k.Refresh, k.Catalog, k.Command, k.Help},
		{k.Accept, k.NextCandidate, k.PrevCandidate, k.AddTag, k.DeleteTag},
		{k.PrevChip, k.NextChip, k.DetachTag},
	}
}
