package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// browseCommand opens the interactive tree browser.
func (c *CLI) browseCommand() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the hierarchy interactively",
		Long: `Browse the concept hierarchy in the terminal.

Keys: ↑/↓ or j/k move, → or l expands, ← or h collapses (or jumps to the
parent), space toggles, q quits. The selected concept's definition and
example are shown below the tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), cmd, strings.TrimPrefix(root, ":"))
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "start at this concept")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, cmd *cobra.Command, root string) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	src, err := c.loadSource(ctx, runner)
	if err != nil {
		return err
	}

	var roots []*taxonomy.Node
	if root != "" {
		n, ok := taxonomy.BuildFrom(src.Concepts(), root)
		if !ok {
			return demerr.New(demerr.ErrCodeUnknownRoot, "concept %q not found in %s", root, src.Path)
		}
		roots = []*taxonomy.Node{n}
	} else {
		roots = taxonomy.Build(src.Concepts(), taxonomy.BuildOptions{RootID: c.Config.Root})
	}
	if len(roots) == 0 {
		printInfo(cmd.OutOrStdout(), "Nothing to browse in %s", src.Path)
		return nil
	}

	p := tea.NewProgram(newBrowseModel(roots), tea.WithContext(ctx), tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}

// =============================================================================
// browseModel - collapsible concept tree
// =============================================================================

type treeRow struct {
	node   *taxonomy.Node
	depth  int
	parent int // row index of the parent, -1 for roots
}

// browseModel is the bubbletea model for the tree browser. Nodes are keyed
// by pointer: a concept with two parents appears as two independent rows.
type browseModel struct {
	roots    []*taxonomy.Node
	expanded map[*taxonomy.Node]bool
	rows     []treeRow
	cursor   int
	offset   int
	height   int
	width    int
}

func newBrowseModel(roots []*taxonomy.Node) browseModel {
	m := browseModel{
		roots:    roots,
		expanded: map[*taxonomy.Node]bool{},
		height:   15,
		width:    80,
	}
	for _, r := range roots {
		m.expanded[r] = true
	}
	m.flatten()
	return m
}

// flatten rebuilds the visible rows from the expansion state.
func (m *browseModel) flatten() {
	m.rows = m.rows[:0]
	var walk func(n *taxonomy.Node, depth, parent int)
	walk = func(n *taxonomy.Node, depth, parent int) {
		idx := len(m.rows)
		m.rows = append(m.rows, treeRow{node: n, depth: depth, parent: parent})
		if m.expanded[n] {
			for _, child := range n.Children {
				walk(child, depth+1, idx)
			}
		}
	}
	for _, r := range m.roots {
		walk(r, 0, -1)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m browseModel) selected() treeRow { return m.rows[m.cursor] }

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "right", "l", "enter":
			if n := m.selected().node; len(n.Children) > 0 {
				m.expanded[n] = true
				m.flatten()
			}
		case "left", "h":
			row := m.selected()
			if m.expanded[row.node] && len(row.node.Children) > 0 {
				m.expanded[row.node] = false
				m.flatten()
			} else if row.parent >= 0 {
				m.cursor = row.parent
			}
		case " ":
			n := m.selected().node
			m.expanded[n] = !m.expanded[n]
			m.flatten()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-12, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Modes of Demise"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  → expand  ← collapse  space toggle  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		marker := "  "
		switch {
		case len(row.node.Children) == 0:
		case m.expanded[row.node]:
			marker = "▾ "
		default:
			marker = "▸ "
		}
		line := strings.Repeat("  ", row.depth) + marker + row.node.Concept.DisplayLabel()
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	return b.String()
}

// detail renders the definition pane for the selected concept.
func (m browseModel) detail() string {
	c := m.selected().node.Concept
	definition := c.Definition
	if definition == "" {
		definition = listDimStyle.Render("No definition available.")
	}
	lines := []string{
		StyleTitle.Render(c.DisplayLabel()) + " " + listDimStyle.Render(":"+c.ID),
		definition,
	}
	if c.Example != "" {
		lines = append(lines, listDimStyle.Render("Example: ")+c.Example)
	}
	if n := m.selected().node.Size() - 1; n > 0 {
		lines = append(lines, listDimStyle.Render(fmt.Sprintf("%d below", n)))
	}
	return detailStyle.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}
