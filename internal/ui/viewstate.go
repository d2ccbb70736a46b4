package ui

// ViewState tracks the visible window over a tailed log. While pinned to
// the bottom it follows new output; once the user scrolls up the window
// stays put across refreshes until they jump back down.
type ViewState struct {
	totalLines int
	height     int
	topOffset  int
	atBottom   bool
}

// NewViewState returns a state pinned to the bottom of an empty log.
func NewViewState(height int) ViewState {
	if height < 1 {
		height = 1
	}
	return ViewState{height: height, atBottom: true}
}

// maxOffset is the largest top offset that still fills the window.
func (v ViewState) maxOffset() int {
	if v.totalLines <= v.height {
		return 0
	}
	return v.totalLines - v.height
}

// Apply installs a new line count from a refresh. Pinned views track the
// new bottom; scrolled views keep their offset, clamped if lines vanished.
func (v *ViewState) Apply(totalLines int) {
	if totalLines < 0 {
		totalLines = 0
	}
	v.totalLines = totalLines
	if v.atBottom {
		v.topOffset = v.maxOffset()
		return
	}
	if v.topOffset > v.maxOffset() {
		v.topOffset = v.maxOffset()
		v.atBottom = true
	}
}

// Resize changes the window height, preserving the pinned/scrolled state.
func (v *ViewState) Resize(height int) {
	if height < 1 {
		height = 1
	}
	v.height = height
	if v.atBottom {
		v.topOffset = v.maxOffset()
	} else if v.topOffset > v.maxOffset() {
		v.topOffset = v.maxOffset()
		v.atBottom = true
	}
}

// ScrollBy moves the window by delta lines, clamping at both ends.
// Reaching the bottom re-pins; any upward movement unpins.
func (v *ViewState) ScrollBy(delta int) {
	offset := v.topOffset + delta
	if offset < 0 {
		offset = 0
	}
	if offset >= v.maxOffset() {
		v.topOffset = v.maxOffset()
		v.atBottom = true
		return
	}
	v.topOffset = offset
	v.atBottom = false
}

// PageUp scrolls up by a full window.
func (v *ViewState) PageUp() { v.ScrollBy(-v.height) }

// PageDown scrolls down by a full window.
func (v *ViewState) PageDown() { v.ScrollBy(v.height) }

// HalfPageUp scrolls up by half a window.
func (v *ViewState) HalfPageUp() { v.ScrollBy(-((v.height + 1) / 2)) }

// HalfPageDown scrolls down by half a window.
func (v *ViewState) HalfPageDown() { v.ScrollBy((v.height + 1) / 2) }

// JumpTop unpins and moves to the first line.
func (v *ViewState) JumpTop() {
	v.topOffset = 0
	v.atBottom = v.maxOffset() == 0
}

// JumpBottom re-pins to the last window.
func (v *ViewState) JumpBottom() {
	v.topOffset = v.maxOffset()
	v.atBottom = true
}

// AtBottom reports whether the view follows new output.
func (v ViewState) AtBottom() bool { return v.atBottom }

// TopOffset returns the index of the first visible line.
func (v ViewState) TopOffset() int { return v.topOffset }

// Height returns the window height in lines.
func (v ViewState) Height() int { return v.height }

// TotalLines returns the last applied line count.
func (v ViewState) TotalLines() int { return v.totalLines }

// Window slices the visible lines out of the full tail buffer.
func (v ViewState) Window(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	top := v.topOffset
	if top > len(lines) {
		top = len(lines)
	}
	end := top + v.height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[top:end]
}
