// ABOUTME: Cursor-driven list component for choosing a group or flashcard set
// ABOUTME: Emits ChosenMsg on enter and BackMsg on escape

package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/styles"
)

// Item is one selectable row.
type Item struct {
	ID    string
	Title string
	Desc  string
}

// ChosenMsg is sent when the user selects an item.
type ChosenMsg struct {
	Item Item
}

// BackMsg is sent when the user backs out of the list.
type BackMsg struct{}

// Picker is a scrollable selection list.
type Picker struct {
	title  string
	empty  string // Shown when there are no items
	items  []Item
	cursor int
}

// New creates a picker with the given heading and rows.
func New(title, empty string, items []Item) *Picker {
	return &Picker{title: title, empty: empty, items: items}
}

// SetItems replaces the rows, clamping the cursor.
func (p *Picker) SetItems(items []Item) {
	p.items = items
	if p.cursor >= len(items) {
		p.cursor = len(items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Init implements tea.Model
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) > 0 {
			item := p.items[p.cursor]
			return p, func() tea.Msg { return ChosenMsg{Item: item} }
		}
	case "esc", "b":
		return p, func() tea.Msg { return BackMsg{} }
	}

	return p, nil
}

// View implements tea.Model
func (p *Picker) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.title))
	sb.WriteString("\n\n")

	if len(p.items) == 0 {
		sb.WriteString(styles.Subtitle.Render(p.empty))
		return sb.String()
	}

	for i, item := range p.items {
		line := item.Title
		if item.Desc != "" {
			line = fmt.Sprintf("%s  %s", item.Title, styles.Subtitle.Render(item.Desc))
		}
		if i == p.cursor {
			sb.WriteString(styles.KeyStyle.Render("> ") + styles.ValueStyle.Render(line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Selected returns the item under the cursor, or false when the list is empty.
func (p *Picker) Selected() (Item, bool) {
	if len(p.items) == 0 {
		return Item{}, false
	}
	return p.items[p.cursor], true
}
