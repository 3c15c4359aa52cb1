package inspect

import (
	"path/filepath"
	"strings"
	"testing"

	"sidepane/ui/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountedPanel(t *testing.T, viewport int) *layout.Panel {
	t.Helper()
	p, err := layout.NewPanel(layout.DefaultOptions())
	require.NoError(t, err)
	p.Mount(viewport)
	return p
}

func TestSnapshotPanelAndLayout(t *testing.T) {
	p := mountedPanel(t, 120)
	require.True(t, p.BeginDrag())
	require.True(t, p.DragTo(35))

	c := layout.ComputeConstraints(120, 30, p.Width())
	d := layout.ComputeDegradation(c, p.Collapsed())
	s := NewSnapshot().WithTerminal(120, 30).WithPanel(p, 35, false).WithLayout(c, d)

	assert.Equal(t, "expanded", s.Panel.State)
	assert.Equal(t, 35, s.Panel.Width)
	assert.Equal(t, layout.DefaultPanelWidth, s.Panel.LastExpandedWidth, "a drag is not remembered until it ends")
	assert.True(t, s.Panel.Resizing)
	assert.Equal(t, 35, s.Layout.ContentX)
	assert.Equal(t, 34, s.Layout.HandleX)
	assert.Equal(t, "compact", s.Layout.Mode)

	require.NotEmpty(t, s.Breakpoints)
	assert.Equal(t, "collapse_sidebar", s.Breakpoints[0].Name)
	assert.False(t, s.Breakpoints[0].Active)
}

func TestSnapshotCollapseBreakpointActive(t *testing.T) {
	p := mountedPanel(t, 70)
	c := layout.ComputeConstraints(70, 30, p.Width())
	d := layout.ComputeDegradation(c, p.Collapsed())
	s := NewSnapshot().WithPanel(p, p.Width(), false).WithLayout(c, d)

	assert.Equal(t, "collapsed", s.Panel.State)
	assert.Equal(t, layout.CollapsedWidth, s.Panel.Width)
	assert.True(t, s.Breakpoints[0].Active)
	assert.True(t, s.Layout.Degradation.HideSidebarLabels)
}

func TestWriteAndReadSnapshot(t *testing.T) {
	p := mountedPanel(t, 120)
	root := NewNode("Shell").WithBounds(0, 0, 120, 30).
		AddChild(NewNode("Sidebar").WithBounds(0, 0, 28, 28))
	s := NewSnapshot().WithTerminal(120, 30).WithPanel(p, 28, false).WithComponents(root)

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, WriteSnapshotToPath(s, path))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, s.Panel, got.Panel)
	assert.Equal(t, "Sidebar", got.Components.Children[0].Type)
}

func TestWriteSnapshotDisabledIsNoop(t *testing.T) {
	if IsEnabled() {
		t.Skip("SIDEPANE_INSPECT is set")
	}
	assert.NoError(t, WriteSnapshot(NewSnapshot()))
	assert.Empty(t, GetInspectFile())
}

func TestNodeFindAndAt(t *testing.T) {
	item := NewNode("SidebarItem").WithID("billing").WithBounds(0, 6, 27, 1)
	root := NewNode("Shell").WithBounds(0, 0, 120, 30).
		AddChild(NewNode("Sidebar").WithBounds(0, 0, 28, 28).AddChild(item)).
		AddChild(NewNode("Content").WithBounds(28, 0, 92, 28))

	assert.Same(t, item, root.Find("SidebarItem"))
	assert.Nil(t, root.Find("Menu"))

	assert.Same(t, item, root.At(3, 6))
	assert.Equal(t, "Sidebar", root.At(27, 6).Type)
	assert.Equal(t, "Content", root.At(28, 6).Type)
	assert.Nil(t, root.At(130, 6))

	hidden := NewNode("Empty").WithBounds(0, 0, 0, 0)
	assert.False(t, hidden.Visible)
}

func TestToText(t *testing.T) {
	p := mountedPanel(t, 120)
	c := layout.ComputeConstraints(120, 30, p.Width())
	d := layout.ComputeDegradation(c, false)
	root := NewNode("Shell").WithBounds(0, 0, 120, 30).
		AddChild(NewNode("SidebarItem").WithID("terms").WithTruncation(20, 12, true))

	text := NewSnapshot().WithTerminal(120, 30).WithPanel(p, 28, false).
		WithLayout(c, d).WithComponents(root).ToText()

	assert.Contains(t, text, "Terminal: 120x30")
	assert.Contains(t, text, "Width: 28 (last expanded 28, displayed 28)")
	assert.Contains(t, text, "Content: 92x28 at x=28")
	assert.Contains(t, text, "SidebarItem [terms]")
	assert.Contains(t, text, "TRUNCATED(20->12)")
	assert.True(t, strings.HasPrefix(text, "=== UI Snapshot ==="))
}

func TestExtractStyleInfo(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	info := ExtractStyleInfo(style, "handle")

	assert.Equal(t, "99", info.Foreground)
	assert.Empty(t, info.Background)
	assert.True(t, info.Bold)
	assert.Equal(t, []string{"handle"}, info.AppliedStyles)
}
