package tui

import "github.com/charmbracelet/bubbles/key"

// Key bindings shared across screens. Each screen lists the subset it
// answers to in Bindings, which also drives the help footer.
var (
	keyQuit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	keyUp   = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyBack = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))

	keyGetStarted    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get started"))
	keyOpenMap       = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map"))
	keyNotifications = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications"))

	keySearch      = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	keyToggleSheet = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "zone card"))
	keyViewDetails = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "details"))
	keyLayer       = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layer"))
	keyProfile     = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile"))
	keySearchDone  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done"))
	keySearchClear = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear"))

	keyUpload = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload ground image"))

	keyCapture       = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "capture"))
	keyGallery       = key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gallery"))
	keyToggleOutcome = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expected outcome"))

	keyRecommendations = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommendations"))
	keyMarkRead        = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark read"))
	keyMarkAllRead     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read"))
	keySignOut         = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out"))
)
