package wasteland

// Menu titles.
const (
	titleStart    = "Wasteland Survivor"
	titlePaused   = "Game Paused"
	titleGameOver = "Game Over"
	titleFailed   = "Failed to Load"
)

type menuItem int

const (
	itemContinue menuItem = iota
	itemNewGame
	itemExit
)

// menu is the overlay shown on start, pause and game over.
type menu struct {
	open         bool
	title        string
	exitLabel    string
	showContinue bool
	selected     int
}

func (m *menu) show(title, exitLabel string, showContinue bool) {
	m.open = true
	m.title = title
	m.exitLabel = exitLabel
	m.showContinue = showContinue
	m.selected = 0
}

func (m *menu) hide() {
	m.open = false
	m.showContinue = false
}

func (m *menu) items() []menuItem {
	if m.showContinue {
		return []menuItem{itemContinue, itemNewGame, itemExit}
	}
	return []menuItem{itemNewGame, itemExit}
}

func (m *menu) label(it menuItem) string {
	switch it {
	case itemContinue:
		return "Continue"
	case itemNewGame:
		return "New Game"
	default:
		return m.exitLabel
	}
}

func (m *menu) move(delta int) {
	n := len(m.items())
	m.selected = (m.selected + delta + n) % n
}

func (m *menu) current() menuItem {
	return m.items()[m.selected]
}
