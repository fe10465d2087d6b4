package tui

// mode is the active screen of the navigator.
type mode int

const (
	modeMenu mode = iota
	modeInput
	modeResultsSplit
	modeResultsFull
)

// viewState is the navigable core of the model: the active mode plus
// the cursors and scroll offset that drive rendering. Transitions are
// pure value-to-value functions so every bound invariant can be
// exercised without a terminal attached.
type viewState struct {
	mode         mode
	menuIndex    int
	resultIndex  int
	scrollOffset int
}

func newViewState() viewState {
	return viewState{mode: modeMenu}
}

func clampIndex(i, count int) int {
	if count <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}

func clampScrollOffset(offset, max int) int {
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

// maxScrollOffset is the last offset that still shows content: total
// line count minus one viewport, never negative.
func maxScrollOffset(lineCount, viewportHeight int) int {
	if viewportHeight <= 0 {
		return 0
	}
	max := lineCount - viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

func (v viewState) moveMenu(delta, count int) viewState {
	v.menuIndex = clampIndex(v.menuIndex+delta, count)
	return v
}

// moveResult shifts the selection cursor. Changing the selected note
// resets the preview scroll to its top.
func (v viewState) moveResult(delta, count int) viewState {
	next := clampIndex(v.resultIndex+delta, count)
	if next != v.resultIndex {
		v.scrollOffset = 0
	}
	v.resultIndex = next
	return v
}

func (v viewState) scrollBy(delta, lineCount, viewportHeight int) viewState {
	max := maxScrollOffset(lineCount, viewportHeight)
	v.scrollOffset = clampScrollOffset(v.scrollOffset+delta, max)
	return v
}

// reclamp forces every cursor back into bounds. Called whenever the
// result set or the viewport size changes.
func (v viewState) reclamp(menuCount, resultCount, lineCount, viewportHeight int) viewState {
	v.menuIndex = clampIndex(v.menuIndex, menuCount)
	v.resultIndex = clampIndex(v.resultIndex, resultCount)
	v.scrollOffset = clampScrollOffset(v.scrollOffset, maxScrollOffset(lineCount, viewportHeight))
	return v
}

func (v viewState) enterInput() viewState {
	v.mode = modeInput
	return v
}

// enterResults lands on a fresh result set with the cursor and scroll
// at the top.
func (v viewState) enterResults() viewState {
	v.mode = modeResultsSplit
	v.resultIndex = 0
	v.scrollOffset = 0
	return v
}

// expand moves from the split view to the full-screen note view,
// keeping the selection.
func (v viewState) expand() viewState {
	v.mode = modeResultsFull
	return v
}

// collapse returns from the full view to the split view. Enter resets
// the scroll; Escape keeps it (collapseKeepScroll).
func (v viewState) collapse() viewState {
	v.mode = modeResultsSplit
	v.scrollOffset = 0
	return v
}

func (v viewState) collapseKeepScroll() viewState {
	v.mode = modeResultsSplit
	return v
}

// backToMenu abandons the current results or input and returns to the
// top-level menu.
func (v viewState) backToMenu() viewState {
	v.mode = modeMenu
	v.resultIndex = 0
	v.scrollOffset = 0
	return v
}
