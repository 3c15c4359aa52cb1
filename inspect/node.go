package inspect

// Node represents a UI component in the inspection tree.
type Node struct {
	// Type is the component type (e.g. "Sidebar", "Content", "SidebarItem").
	Type string `json:"type"`

	// ID is an optional identifier for the component.
	ID string `json:"id,omitempty"`

	Bounds  Bounds `json:"bounds"`
	Visible bool   `json:"visible"`

	// State contains component-specific state information.
	State map[string]any `json:"state,omitempty"`

	Styles   *StyleInfo `json:"styles,omitempty"`
	Children []*Node    `json:"children,omitempty"`

	// Content is the text content if applicable.
	Content string `json:"content,omitempty"`

	// Truncated is set when a label did not fit its column.
	Truncated *TruncationInfo `json:"truncated,omitempty"`
}

// Bounds is a component's cell rectangle.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the cell (x, y) is inside the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// StyleInfo contains styling information for a component.
type StyleInfo struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`

	Bold      bool `json:"bold,omitempty"`
	Underline bool `json:"underline,omitempty"`

	BorderColor string `json:"border_color,omitempty"`

	// Reference to named styles being used
	AppliedStyles []string `json:"applied_styles,omitempty"`
}

// TruncationInfo records a label cut to fit its column.
type TruncationInfo struct {
	OriginalLength int  `json:"original_length"`
	DisplayLength  int  `json:"display_length"`
	Ellipsis       bool `json:"ellipsis"`
}

// NewNode creates a visible Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]any),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	n.Visible = width > 0 && height > 0
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value any) *Node {
	if n.State == nil {
		n.State = make(map[string]any)
	}
	n.State[key] = value
	return n
}

// WithStyles sets the node styles and returns the node for chaining.
func (n *Node) WithStyles(styles *StyleInfo) *Node {
	n.Styles = styles
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// WithTruncation sets truncation info and returns the node for chaining.
func (n *Node) WithTruncation(original, displayed int, hasEllipsis bool) *Node {
	n.Truncated = &TruncationInfo{
		OriginalLength: original,
		DisplayLength:  displayed,
		Ellipsis:       hasEllipsis,
	}
	return n
}

// Find returns the first node of type nodeType in a depth-first walk, or nil.
func (n *Node) Find(nodeType string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}

// At returns the deepest visible node whose bounds contain (x, y), or nil.
func (n *Node) At(x, y int) *Node {
	if n == nil || !n.Visible || !n.Bounds.Contains(x, y) {
		return nil
	}
	for _, c := range n.Children {
		if hit := c.At(x, y); hit != nil {
			return hit
		}
	}
	return n
}
