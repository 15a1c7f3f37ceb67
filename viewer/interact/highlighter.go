package interact

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"dreamscape/viewer/scene"
)

// Tooltip is the hover label shown next to the highlighted node. The
// screen position is projected by the render loop each frame.
type Tooltip struct {
	Visible  bool
	Text     string
	Position rl.Vector2
}

// Hide clears the tooltip.
func (t *Tooltip) Hide() {
	t.Visible = false
	t.Text = ""
}

// Show sets the tooltip text and marks it visible.
func (t *Tooltip) Show(text string) {
	t.Visible = true
	t.Text = text
}

// Highlighter tracks the single highlighted node for the session. At
// most one node is highlighted at a time; hovering a different node
// resets everything before recoloring.
type Highlighter struct {
	current *scene.NodeMesh
	tooltip Tooltip
}

// NewHighlighter creates a highlighter with nothing highlighted.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Current returns the highlighted node, or nil.
func (h *Highlighter) Current() *scene.NodeMesh {
	return h.current
}

// Tooltip returns the tooltip state for the render loop to draw.
func (h *Highlighter) Tooltip() *Tooltip {
	return &h.tooltip
}

// Update applies a pick result: a hit shows the tooltip and highlights
// the node plus its incident lines; no hit hides the tooltip and
// restores every color.
func (h *Highlighter) Update(sc *scene.Scene, hit *scene.NodeMesh) {
	if hit == nil {
		h.tooltip.Hide()
		h.Reset(sc)
		return
	}

	h.tooltip.Show(hit.ID)

	if hit == h.current {
		return
	}

	h.Reset(sc)
	h.current = hit

	hit.Color = scene.HighlightColor
	for _, line := range hit.Incident {
		line.Highlighted = true
		line.Color = scene.HighlightColor
	}
}

// Reset restores every node to the default color and every line to its
// recorded weight color (neutral gray when none was recorded), and
// clears the highlighted node.
func (h *Highlighter) Reset(sc *scene.Scene) {
	for _, mesh := range sc.Meshes {
		mesh.Color = scene.DefaultNodeColor
	}
	for _, line := range sc.Lines {
		line.RestoreBaseColor()
	}
	h.current = nil
}
