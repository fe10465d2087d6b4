package tui

import "testing"

func TestClampIndex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		i, count int
		want     int
	}{
		{name: "in range", i: 2, count: 5, want: 2},
		{name: "negative", i: -4, count: 5, want: 0},
		{name: "past end", i: 9, count: 5, want: 4},
		{name: "empty list", i: 3, count: 0, want: 0},
		{name: "negative count", i: 3, count: -1, want: 0},
		{name: "single item", i: 1, count: 1, want: 0},
	}

	for _, tc := range cases {
		if got := clampIndex(tc.i, tc.count); got != tc.want {
			t.Errorf("%s: clampIndex(%d, %d) = %d, want %d", tc.name, tc.i, tc.count, got, tc.want)
		}
	}
}

func TestClampScrollOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		offset, max int
		want        int
	}{
		{name: "in range", offset: 3, max: 10, want: 3},
		{name: "negative offset", offset: -2, max: 10, want: 0},
		{name: "past max", offset: 15, max: 10, want: 10},
		{name: "negative max", offset: 5, max: -3, want: 0},
		{name: "zero max", offset: 5, max: 0, want: 0},
	}

	for _, tc := range cases {
		if got := clampScrollOffset(tc.offset, tc.max); got != tc.want {
			t.Errorf("%s: clampScrollOffset(%d, %d) = %d, want %d", tc.name, tc.offset, tc.max, got, tc.want)
		}
	}
}

func TestMaxScrollOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                      string
		lineCount, viewportHeight int
		want                      int
	}{
		{name: "content exceeds viewport", lineCount: 50, viewportHeight: 20, want: 30},
		{name: "content fits", lineCount: 10, viewportHeight: 20, want: 0},
		{name: "exact fit", lineCount: 20, viewportHeight: 20, want: 0},
		{name: "zero viewport", lineCount: 50, viewportHeight: 0, want: 0},
		{name: "no content", lineCount: 0, viewportHeight: 20, want: 0},
	}

	for _, tc := range cases {
		if got := maxScrollOffset(tc.lineCount, tc.viewportHeight); got != tc.want {
			t.Errorf("%s: maxScrollOffset(%d, %d) = %d, want %d",
				tc.name, tc.lineCount, tc.viewportHeight, got, tc.want)
		}
	}
}

func TestMoveMenuClampsAtBothEnds(t *testing.T) {
	t.Parallel()

	v := newViewState()
	v = v.moveMenu(-5, 4)
	if v.menuIndex != 0 {
		t.Fatalf("expected menu index pinned at 0, got %d", v.menuIndex)
	}

	v = v.moveMenu(100, 4)
	if v.menuIndex != 3 {
		t.Fatalf("expected menu index pinned at 3, got %d", v.menuIndex)
	}

	v = v.moveMenu(-1, 4)
	if v.menuIndex != 2 {
		t.Fatalf("expected menu index 2, got %d", v.menuIndex)
	}
}

func TestMoveResultResetsScrollOnlyWhenSelectionChanges(t *testing.T) {
	t.Parallel()

	v := newViewState()
	v.resultIndex = 1
	v.scrollOffset = 7

	v = v.moveResult(1, 5)
	if v.resultIndex != 2 {
		t.Fatalf("expected result index 2, got %d", v.resultIndex)
	}
	if v.scrollOffset != 0 {
		t.Fatalf("expected scroll reset on selection change, got %d", v.scrollOffset)
	}

	// Pinned at the last index the selection does not change, so a
	// scrolled preview stays where it was.
	v.resultIndex = 4
	v.scrollOffset = 3
	v = v.moveResult(1, 5)
	if v.resultIndex != 4 {
		t.Fatalf("expected result index pinned at 4, got %d", v.resultIndex)
	}
	if v.scrollOffset != 3 {
		t.Fatalf("expected scroll kept at 3 when selection is unchanged, got %d", v.scrollOffset)
	}
}

func TestScrollByClamps(t *testing.T) {
	t.Parallel()

	v := newViewState()

	v = v.scrollBy(-10, 100, 20)
	if v.scrollOffset != 0 {
		t.Fatalf("expected scroll pinned at 0, got %d", v.scrollOffset)
	}

	v = v.scrollBy(1000, 100, 20)
	if v.scrollOffset != 80 {
		t.Fatalf("expected scroll pinned at 80, got %d", v.scrollOffset)
	}

	v = v.scrollBy(-20, 100, 20)
	if v.scrollOffset != 60 {
		t.Fatalf("expected scroll at 60, got %d", v.scrollOffset)
	}
}

// Any sequence of cursor moves and scrolls must leave every field
// inside its bounds, whatever the result set and viewport look like.
func TestNavigationSequencesStayInBounds(t *testing.T) {
	t.Parallel()

	deltas := []int{-1000000, -7, -1, 0, 1, 7, 1000000}
	counts := []int{0, 1, 3, 50}
	viewports := []struct{ lines, height int }{
		{0, 0}, {5, 10}, {40, 10}, {200, 24},
	}

	for _, count := range counts {
		for _, vp := range viewports {
			v := newViewState()
			for _, d := range deltas {
				v = v.moveResult(d, count)
				v = v.scrollBy(d, vp.lines, vp.height)

				if v.resultIndex < 0 || (count > 0 && v.resultIndex >= count) || (count == 0 && v.resultIndex != 0) {
					t.Fatalf("result index %d out of bounds for count %d", v.resultIndex, count)
				}
				max := maxScrollOffset(vp.lines, vp.height)
				if v.scrollOffset < 0 || v.scrollOffset > max {
					t.Fatalf("scroll offset %d outside [0, %d] for %d lines in height %d",
						v.scrollOffset, max, vp.lines, vp.height)
				}
			}
		}
	}
}

func TestEnterResultsStartsAtTop(t *testing.T) {
	t.Parallel()

	v := newViewState()
	v.resultIndex = 9
	v.scrollOffset = 14

	v = v.enterResults()
	if v.mode != modeResultsSplit {
		t.Fatalf("expected split mode, got %d", v.mode)
	}
	if v.resultIndex != 0 || v.scrollOffset != 0 {
		t.Fatalf("expected fresh results to start at the top, got index %d offset %d",
			v.resultIndex, v.scrollOffset)
	}
}

func TestExpandKeepsSelectionAndScroll(t *testing.T) {
	t.Parallel()

	v := newViewState().enterResults()
	v.resultIndex = 2
	v.scrollOffset = 5

	v = v.expand()
	if v.mode != modeResultsFull {
		t.Fatalf("expected full mode, got %d", v.mode)
	}
	if v.resultIndex != 2 || v.scrollOffset != 5 {
		t.Fatalf("expected selection and scroll carried into full view, got index %d offset %d",
			v.resultIndex, v.scrollOffset)
	}
}

func TestCollapseResetsScrollButEscapeKeepsIt(t *testing.T) {
	t.Parallel()

	v := newViewState().enterResults().expand()
	v.scrollOffset = 12

	kept := v.collapseKeepScroll()
	if kept.mode != modeResultsSplit {
		t.Fatalf("expected split mode after escape, got %d", kept.mode)
	}
	if kept.scrollOffset != 12 {
		t.Fatalf("expected escape to keep scroll at 12, got %d", kept.scrollOffset)
	}

	reset := v.collapse()
	if reset.mode != modeResultsSplit {
		t.Fatalf("expected split mode after enter, got %d", reset.mode)
	}
	if reset.scrollOffset != 0 {
		t.Fatalf("expected enter to reset scroll, got %d", reset.scrollOffset)
	}
}

func TestBackToMenuResetsCursors(t *testing.T) {
	t.Parallel()

	v := newViewState().enterResults()
	v.resultIndex = 3
	v.scrollOffset = 8

	v = v.backToMenu()
	if v.mode != modeMenu {
		t.Fatalf("expected menu mode, got %d", v.mode)
	}
	if v.resultIndex != 0 || v.scrollOffset != 0 {
		t.Fatalf("expected cursors reset, got index %d offset %d", v.resultIndex, v.scrollOffset)
	}
}

func TestReclampAfterResultSetShrinks(t *testing.T) {
	t.Parallel()

	v := newViewState().enterResults()
	v.resultIndex = 9
	v.scrollOffset = 30

	v = v.reclamp(4, 3, 15, 10)
	if v.resultIndex != 2 {
		t.Fatalf("expected result index clamped to 2, got %d", v.resultIndex)
	}
	if v.scrollOffset != 5 {
		t.Fatalf("expected scroll clamped to 5, got %d", v.scrollOffset)
	}

	v = v.reclamp(4, 0, 0, 10)
	if v.resultIndex != 0 || v.scrollOffset != 0 {
		t.Fatalf("expected cursors zeroed for empty results, got index %d offset %d",
			v.resultIndex, v.scrollOffset)
	}
}
