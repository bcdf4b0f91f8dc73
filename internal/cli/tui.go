package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flexline/pkg/scene"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const defaultListHeight = 15

// =============================================================================
// InspectModel - Interactive line and item browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a layout. The first
// screen lists content lines; enter opens the items placed on a line.
type InspectModel struct {
	Layout scene.Layout
	Lines  []scene.LineInfo
	Height int

	// Line list position.
	Cursor int
	Offset int

	// Open is true while the items of Lines[Cursor] are shown.
	Open       bool
	Items      []scene.FrameInfo
	ItemCursor int
	ItemOffset int
}

// NewInspectModel creates a browser for l.
func NewInspectModel(l scene.Layout) InspectModel {
	return InspectModel{
		Layout: l,
		Lines:  l.ContentLines(),
		Height: defaultListHeight,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, help, borders and footer
		m.Height = max(msg.Height-10, 3)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "left", "h", "backspace":
			if !m.Open {
				if msg.String() == "esc" {
					return m, tea.Quit
				}
				return m, nil
			}
			m.Open = false
		case "enter", "right", "l":
			if !m.Open && len(m.Lines) > 0 {
				m.Open = true
				m.Items = lineFrames(m.Layout, m.Lines[m.Cursor].Index)
				m.ItemCursor, m.ItemOffset = 0, 0
			}
		case "up", "k":
			if m.Open {
				m.ItemCursor, m.ItemOffset = scroll(m.ItemCursor, m.ItemOffset, -1, len(m.Items), m.Height)
			} else {
				m.Cursor, m.Offset = scroll(m.Cursor, m.Offset, -1, len(m.Lines), m.Height)
			}
		case "down", "j":
			if m.Open {
				m.ItemCursor, m.ItemOffset = scroll(m.ItemCursor, m.ItemOffset, 1, len(m.Items), m.Height)
			} else {
				m.Cursor, m.Offset = scroll(m.Cursor, m.Offset, 1, len(m.Lines), m.Height)
			}
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(layoutTitle(m.Layout)))
	b.WriteString("\n")
	if m.Open {
		line := m.Lines[m.Cursor]
		b.WriteString(StyleHighlight.Render(fmt.Sprintf("Line %d", line.Index)))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  items %d-%d, main %d, cross %d", line.First, line.Last, line.MainSize, line.CrossSize)))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ← back  q quit"))
		b.WriteString("\n\n")
		b.WriteString(itemTable(m.Items, m.ItemCursor, m.ItemOffset, m.Height).Render())
		b.WriteString("\n\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.ItemCursor+1, len(m.Items)), len(m.Items))))
		return b.String()
	}

	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ items  q quit"))
	b.WriteString("\n\n")
	if len(m.Lines) == 0 {
		b.WriteString(listDimStyle.Render("  no lines"))
		return b.String()
	}
	b.WriteString(lineTable(m.Lines, m.Cursor, m.Offset, m.Height).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Lines))))
	return b.String()
}

// =============================================================================
// Tables
// =============================================================================

// lineTable lists lines[offset:offset+height] with the cursor row
// highlighted. A negative cursor highlights nothing.
func lineTable(lines []scene.LineInfo, cursor, offset, height int) *table.Table {
	end := min(offset+height, len(lines))
	rows := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		ln := lines[i]
		rows = append(rows, []string{
			marker(i == cursor),
			strconv.Itoa(ln.Index),
			strconv.Itoa(ln.ItemCount),
			fmt.Sprintf("%d-%d", ln.First, ln.Last),
			strconv.Itoa(ln.MainSize),
			strconv.Itoa(ln.CrossSize),
			formatRect(ln.Bounds),
		})
	}
	return newTable(rows, func(row int) bool { return offset+row == cursor },
		"", "Line", "Items", "Range", "Main", "Cross", "Bounds")
}

// itemTable lists the frames of one line.
func itemTable(items []scene.FrameInfo, cursor, offset, height int) *table.Table {
	end := min(offset+height, len(items))
	rows := make([][]string, 0, max(end-offset, 0))
	for i := offset; i < end; i++ {
		f := items[i]
		rows = append(rows, []string{
			marker(i == cursor),
			f.ID,
			f.Label,
			strconv.Itoa(f.Rect.X),
			strconv.Itoa(f.Rect.Y),
			strconv.Itoa(f.Rect.Width),
			strconv.Itoa(f.Rect.Height),
		})
	}
	return newTable(rows, func(row int) bool { return offset+row == cursor },
		"", "ID", "Label", "X", "Y", "W", "H")
}

func newTable(rows [][]string, current func(row int) bool, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if current(row) {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}

// =============================================================================
// Helpers
// =============================================================================

// lineFrames returns the visible frames placed on content line idx.
func lineFrames(l scene.Layout, idx int) []scene.FrameInfo {
	var out []scene.FrameInfo
	for _, f := range l.Visible() {
		if f.Line == idx {
			out = append(out, f)
		}
	}
	return out
}

// scroll moves cursor by delta within [0, n) and keeps it inside the
// window of the given height starting at offset.
func scroll(cursor, offset, delta, n, height int) (int, int) {
	cursor += delta
	if cursor < 0 || cursor >= n {
		return cursor - delta, offset
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return cursor, offset
}

func layoutTitle(l scene.Layout) string {
	name := l.Scene
	if name == "" {
		name = "layout"
	}
	return fmt.Sprintf("%s  %dx%d  %s %s  %s", name, l.Width, l.Height, l.Direction, l.Wrap,
		plural(len(l.ContentLines()), "line"))
}

func marker(current bool) string {
	if current {
		return "▸"
	}
	return " "
}

func formatRect(r *scene.Rect) string {
	if r == nil {
		return "—"
	}
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}
