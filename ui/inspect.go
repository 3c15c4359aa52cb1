package ui

import (
	"sidepane/inspect"
	"sidepane/ui/layout"

	"github.com/mattn/go-runewidth"
)

// InspectNode describes the section list and its handle.
func (s *Sidebar) InspectNode() *inspect.Node {
	node := inspect.NewNode("Sidebar").
		WithBounds(0, 0, s.width, s.height).
		WithState("selected", s.selected).
		WithState("show_labels", s.showLabels).
		WithState("resizing", s.resizing)

	bodyWidth := max(0, s.width-1)
	for i, item := range s.items {
		y := layout.SidebarHeaderHeight + i
		child := inspect.NewNode("SidebarItem").
			WithID(item.Slug).
			WithBounds(0, y, bodyWidth, 1).
			WithState("selected", i == s.selected)
		if y >= s.height {
			child.Visible = false
		}

		if s.showLabels {
			label := " " + item.Icon + " " + item.Title
			child.WithContent(item.Title)
			if w := runewidth.StringWidth(label); w > bodyWidth {
				child.WithTruncation(w, bodyWidth, true)
			}
		} else {
			child.WithContent(item.Icon)
		}

		style := itemStyle
		if i == s.selected {
			style = selectedItemStyle
		}
		node.AddChild(child.WithStyles(inspect.ExtractStyleInfo(style)))
	}

	handleStyleName, handleRendered := "handle", handleStyle
	if s.resizing {
		handleStyleName, handleRendered = "handle_resizing", handleResizingStyle
	}
	handle := inspect.NewNode("Handle").
		WithBounds(s.width-1, 0, min(1, s.width), s.height).
		WithStyles(inspect.ExtractStyleInfo(handleRendered, handleStyleName))
	node.AddChild(handle)

	return node
}

// InspectNode describes the content pane.
func (c *Content) InspectNode() *inspect.Node {
	return inspect.NewNode("Content").
		WithContent(c.title).
		WithState("show_header", c.headerHeight() > 0).
		WithState("y_offset", c.viewport.YOffset).
		WithState("total_lines", c.viewport.TotalLineCount())
}

// InspectNode describes the bottom menu.
func (m *Menu) InspectNode() *inspect.Node {
	return inspect.NewNode("Menu").
		WithBounds(0, 0, m.width, m.height).
		WithContent(m.Status()).
		WithState("hide_hints", m.hideHints)
}

// InspectNode returns the component tree with screen coordinates.
func (s *Shell) InspectNode() *inspect.Node {
	c := s.constraints
	root := inspect.NewNode("Shell").WithBounds(0, 0, s.width, s.height)
	if s.degradation.ShowMinWarning {
		return root.AddChild(inspect.NewNode("MinSizeWarning").WithBounds(0, 0, s.width, s.height))
	}

	root.AddChild(s.sidebar.InspectNode())
	root.AddChild(s.content.InspectNode().WithBounds(c.ContentX, 0, c.ContentWidth, c.ContentHeight))

	menu := s.menu.InspectNode()
	menu.Bounds.Y = c.SidebarHeight
	root.AddChild(menu)
	return root
}

// Snapshot captures the panel, layout and component tree.
func (s *Shell) Snapshot() *inspect.Snapshot {
	return inspect.NewSnapshot().
		WithTerminal(s.width, s.height).
		WithPanel(s.panel, s.DisplayedWidth(), s.animating).
		WithLayout(s.constraints, s.degradation).
		WithComponents(s.InspectNode())
}
