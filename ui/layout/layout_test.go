package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   LayoutMode
	}{
		{
			name:   "full mode - large terminal",
			width:  160,
			height: 50,
			want:   LayoutFull,
		},
		{
			name:   "standard mode - both at standard thresholds",
			width:  120,
			height: 40,
			want:   LayoutStandard,
		},
		{
			name:   "compact mode - wide but short",
			width:  130,
			height: 30,
			want:   LayoutCompact, // height 30 < StandardHeight
		},
		{
			name:   "exact breakpoint - should be compact",
			width:  80,
			height: 24,
			want:   LayoutCompact,
		},
		{
			name:   "minimal mode - below collapse breakpoint",
			width:  79,
			height: 30,
			want:   LayoutMinimal,
		},
		{
			name:   "minimal mode - below minimum height",
			width:  100,
			height: 11,
			want:   LayoutMinimal,
		},
		{
			name:   "very wide, standard height",
			width:  200,
			height: 45,
			want:   LayoutStandard, // Uses most restrictive mode (height-based)
		},
		{
			name:   "tall but narrow",
			width:  85,
			height: 60,
			want:   LayoutCompact, // Uses most restrictive mode (width-based)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineMode(tt.width, tt.height)
			assert.Equal(t, tt.want, got, "DetermineMode(%d, %d)", tt.width, tt.height)
		})
	}
}

func TestComputeConstraints(t *testing.T) {
	tests := []struct {
		name               string
		width              int
		height             int
		panelWidth         int
		wantMode           LayoutMode
		wantSidebarWidth   int
		wantContentWidth   int
		wantMenuHeight     int
		wantShowMinWarning bool
	}{
		{
			name:             "standard terminal, expanded panel",
			width:            120,
			height:           40,
			panelWidth:       28,
			wantMode:         LayoutStandard,
			wantSidebarWidth: 28,
			wantContentWidth: 92,
			wantMenuHeight:   MenuStandardHeight,
		},
		{
			name:             "breakpoint terminal, collapsed panel",
			width:            80,
			height:           24,
			panelWidth:       CollapsedWidth,
			wantMode:         LayoutCompact,
			wantSidebarWidth: CollapsedWidth,
			wantContentWidth: 74,
			wantMenuHeight:   MenuStandardHeight,
		},
		{
			name:               "tiny terminal - single line menu and warning",
			width:              30,
			height:             10,
			panelWidth:         28,
			wantMode:           LayoutMinimal,
			wantSidebarWidth:   28,
			wantContentWidth:   2,
			wantMenuHeight:     MenuMinHeight,
			wantShowMinWarning: true,
		},
		{
			name:               "panel wider than terminal is clipped",
			width:              20,
			height:             10,
			panelWidth:         28,
			wantMode:           LayoutMinimal,
			wantSidebarWidth:   20,
			wantContentWidth:   0,
			wantMenuHeight:     MenuMinHeight,
			wantShowMinWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeConstraints(tt.width, tt.height, tt.panelWidth)
			assert.Equal(t, tt.wantMode, c.Mode, "Mode")
			assert.Equal(t, tt.wantSidebarWidth, c.SidebarWidth, "SidebarWidth")
			assert.Equal(t, tt.wantContentWidth, c.ContentWidth, "ContentWidth")
			assert.Equal(t, tt.wantMenuHeight, c.MenuHeight, "MenuHeight")
			assert.Equal(t, tt.wantShowMinWarning, c.ShowMinWarning, "ShowMinWarning")

			// Content is offset by exactly the sidebar width: no gap, no overlap.
			assert.Equal(t, c.SidebarWidth, c.ContentX, "ContentX")
			assert.Equal(t, tt.width, c.SidebarWidth+c.ContentWidth, "widths should fill the terminal")
			assert.Equal(t, tt.height, c.ContentHeight+c.MenuHeight, "heights should fill the terminal")
			assert.Equal(t, c.ContentHeight, c.SidebarHeight)
		})
	}
}

func TestConstraintsHitTesting(t *testing.T) {
	c := ComputeConstraints(120, 40, 28)

	assert.Equal(t, 27, c.HandleX())
	assert.True(t, c.OnHandle(27, 0))
	assert.True(t, c.OnHandle(27, c.SidebarHeight-1))
	assert.False(t, c.OnHandle(27, c.SidebarHeight), "menu row is not part of the handle")
	assert.False(t, c.OnHandle(26, 5))

	assert.True(t, c.InSidebar(0, 3))
	assert.True(t, c.InSidebar(26, 3))
	assert.False(t, c.InSidebar(27, 3), "handle column is not sidebar body")

	assert.True(t, c.InContent(28, 3))
	assert.False(t, c.InContent(27, 3))
	assert.False(t, c.InContent(120, 3))

	empty := ComputeConstraints(120, 40, 0)
	assert.Equal(t, -1, empty.HandleX())
	assert.False(t, empty.OnHandle(-1, 0))
}

func TestComputeDegradation(t *testing.T) {
	tests := []struct {
		name             string
		width            int
		height           int
		panelWidth       int
		collapsed        bool
		wantHideLabels   bool
		wantHideHeader   bool
		wantSingleLine   bool
		wantHideHints    bool
		wantMinWarning   bool
		wantHeaderHeight int
	}{
		{
			name:             "large terminal - no degradation",
			width:            120,
			height:           40,
			panelWidth:       28,
			wantHeaderHeight: ContentHeaderHeight,
		},
		{
			name:             "collapsed panel hides labels",
			width:            120,
			height:           40,
			panelWidth:       CollapsedWidth,
			collapsed:        true,
			wantHideLabels:   true,
			wantHeaderHeight: ContentHeaderHeight,
		},
		{
			name:             "expanded but too narrow for labels",
			width:            120,
			height:           40,
			panelWidth:       LabelMinWidth - 1,
			wantHideLabels:   true,
			wantHeaderHeight: ContentHeaderHeight,
		},
		{
			name:             "short terminal - header hidden, single line menu",
			width:            100,
			height:           15,
			panelWidth:       28,
			wantHideHeader:   true,
			wantSingleLine:   true,
			wantHeaderHeight: 0,
		},
		{
			name:             "narrow terminal - menu hints hidden",
			width:            70,
			height:           30,
			panelWidth:       CollapsedWidth,
			collapsed:        true,
			wantHideLabels:   true,
			wantHideHints:    true,
			wantHeaderHeight: ContentHeaderHeight,
		},
		{
			name:             "below minimum - warning",
			width:            30,
			height:           10,
			panelWidth:       CollapsedWidth,
			collapsed:        true,
			wantHideLabels:   true,
			wantHideHeader:   true,
			wantSingleLine:   true,
			wantHideHints:    true,
			wantMinWarning:   true,
			wantHeaderHeight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeConstraints(tt.width, tt.height, tt.panelWidth)
			d := ComputeDegradation(c, tt.collapsed)

			assert.Equal(t, tt.wantHideLabels, d.HideSidebarLabels, "HideSidebarLabels")
			assert.Equal(t, !tt.wantHideLabels, d.ShouldShowLabels(), "ShouldShowLabels")
			assert.Equal(t, tt.wantHideHeader, d.HideContentHeader, "HideContentHeader")
			assert.Equal(t, tt.wantSingleLine, d.SingleLineMenu, "SingleLineMenu")
			assert.Equal(t, tt.wantHideHints, d.HideMenuHints, "HideMenuHints")
			assert.Equal(t, tt.wantMinWarning, d.ShowMinWarning, "ShowMinWarning")
			assert.Equal(t, tt.wantHeaderHeight, d.ContentHeaderHeight(), "ContentHeaderHeight")
		})
	}
}

func TestLayoutModeString(t *testing.T) {
	tests := []struct {
		mode LayoutMode
		want string
	}{
		{LayoutFull, "full"},
		{LayoutStandard, "standard"},
		{LayoutCompact, "compact"},
		{LayoutMinimal, "minimal"},
		{LayoutMode(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestComputeOverlaySize(t *testing.T) {
	tests := []struct {
		name       string
		termWidth  int
		termHeight int
		maxWidth   int
		maxHeight  int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "large terminal - uses max",
			termWidth:  150,
			termHeight: 50,
			maxWidth:   80,
			maxHeight:  25,
			wantWidth:  60,
			wantHeight: 20,
		},
		{
			name:       "small terminal - constrained by margin",
			termWidth:  40,
			termHeight: 14,
			maxWidth:   80,
			maxHeight:  25,
			wantWidth:  36, // 40 - 2*2
			wantHeight: 10, // 14 - 2*2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ComputeOverlaySize(tt.termWidth, tt.termHeight, tt.maxWidth, tt.maxHeight)
			assert.Equal(t, tt.wantWidth, w, "width")
			assert.Equal(t, tt.wantHeight, h, "height")
		})
	}
}

// TestResponsiveBreakpoints verifies the breakpoint thresholds are sensible
func TestResponsiveBreakpoints(t *testing.T) {
	assert.Less(t, MinWidth, CompactWidth)
	assert.Less(t, CompactWidth, StandardWidth)
	assert.Less(t, StandardWidth, FullWidth)

	assert.Less(t, MinHeight, CompactHeight)
	assert.Less(t, CompactHeight, StandardHeight)
	assert.Less(t, StandardHeight, FullHeight)

	// The collapse breakpoint must leave room for an expanded panel plus content.
	assert.GreaterOrEqual(t, CollapseBreakpoint, CompactWidth)
	assert.Greater(t, CollapseBreakpoint, PanelMaxWidth)

	assert.LessOrEqual(t, PanelMinWidth, DefaultPanelWidth)
	assert.LessOrEqual(t, DefaultPanelWidth, PanelMaxWidth)
	assert.Less(t, CollapsedWidth, PanelMinWidth)
	assert.GreaterOrEqual(t, PanelMinWidth, LabelMinWidth)

	require.NoError(t, DefaultOptions().Validate())
}
