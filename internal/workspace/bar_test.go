package workspace

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"pgregory.net/rapid"

	"github.com/chatter/hotbar/internal/hotbar"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// newTestBar builds a bar with n buttons whose glyphs are "b0", "b1", ...
// and records clicks in the returned slice.
func newTestBar(n, width int) (*Bar, *[]string) {
	var clicks []string
	bar := newBar(hotbar.SlotBottom, nil)
	for i := range n {
		id := fmt.Sprintf("b%d", i)
		btn := bar.AddElement(id).(*Button)
		btn.glyph = id
		btn.SetTooltip("tip " + id)
		btn.OnClick(func() { clicks = append(clicks, id) })
	}
	bar.SetWidth(width)
	return bar, &clicks
}

// =============================================================================
// Unit Tests
// =============================================================================

func TestBar_ViewShowsButtonsInOrder(t *testing.T) {
	bar, _ := newTestBar(3, 40)

	view := stripANSI(bar.View())

	if !strings.HasPrefix(view, " b0   b1   b2 ") {
		t.Errorf("unexpected view %q", view)
	}
}

func TestBar_ClickAt(t *testing.T) {
	bar, clicks := newTestBar(3, 40)

	// Cells are 4 wide with a 1 column gap: b0 [0,4), b1 [5,9), b2 [10,14).
	for _, x := range []int{0, 3, 5, 12} {
		bar.ClickAt(x)
	}
	if bar.ClickAt(4) {
		t.Error("click on the gap should not be handled")
	}

	want := []string{"b0", "b0", "b1", "b2"}
	if strings.Join(*clicks, ",") != strings.Join(want, ",") {
		t.Errorf("clicks %v, want %v", *clicks, want)
	}
}

func TestBar_Press(t *testing.T) {
	bar, clicks := newTestBar(3, 40)

	if !bar.Press(2) || bar.Press(3) || bar.Press(-1) {
		t.Fatal("Press should accept only valid indexes")
	}
	if len(*clicks) != 1 || (*clicks)[0] != "b2" {
		t.Errorf("clicks %v", *clicks)
	}
}

func TestBar_HoverAt(t *testing.T) {
	bar, _ := newTestBar(2, 40)

	tip, ok := bar.HoverAt(6)
	if !ok || tip != "tip b1" {
		t.Errorf("HoverAt(6) = %q, %v", tip, ok)
	}
	if bar.hovered != 1 {
		t.Errorf("hovered = %d", bar.hovered)
	}

	if _, ok := bar.HoverAt(30); ok {
		t.Error("hover past the last button should miss")
	}
	if bar.hovered != -1 {
		t.Error("missed hover should clear the highlight")
	}
}

func TestBar_OverflowScrolls(t *testing.T) {
	// Room for two cells plus the right marker.
	bar, clicks := newTestBar(5, 11)

	view := stripANSI(bar.View())
	if !strings.HasSuffix(view, "›") {
		t.Fatalf("expected right overflow marker, got %q", view)
	}

	bar.ClickAt(10)
	view = stripANSI(bar.View())
	if !strings.HasPrefix(view, "‹") || !strings.Contains(view, "b1") || strings.Contains(view, "b0") {
		t.Errorf("expected scrolled view starting at b1, got %q", view)
	}
	if len(*clicks) != 0 {
		t.Errorf("marker clicks should not press buttons, got %v", *clicks)
	}
}

func TestBar_PressScrollsIntoView(t *testing.T) {
	bar, _ := newTestBar(6, 11)

	bar.Press(4)

	if !strings.Contains(stripANSI(bar.View()), "b4") {
		t.Errorf("pressed button should be visible, got %q", stripANSI(bar.View()))
	}
}

func TestBar_EmptyResets(t *testing.T) {
	bar, _ := newTestBar(6, 11)
	bar.Scroll(3)
	bar.HoverAt(2)

	bar.Empty()

	if len(bar.Buttons()) != 0 || bar.offset != 0 || bar.hovered != -1 {
		t.Errorf("Empty left state: %d buttons offset %d hovered %d", len(bar.Buttons()), bar.offset, bar.hovered)
	}
}

func TestBar_DetachReleasesOnce(t *testing.T) {
	calls := 0
	bar := newBar(hotbar.SlotTop, func(*Bar) { calls++ })

	bar.Detach()
	bar.Detach()

	if calls != 1 {
		t.Errorf("release called %d times", calls)
	}
}

// =============================================================================
// Property Tests
// =============================================================================

func TestBar_WidthExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 15).Draw(t, "buttons")
		width := rapid.IntRange(0, 120).Draw(t, "width")
		scroll := rapid.IntRange(0, 15).Draw(t, "scroll")

		bar, _ := newTestBar(n, width)
		bar.Scroll(scroll)

		view := bar.View()
		if got := lipgloss.Width(view); got != width {
			t.Fatalf("view width %d, want %d: %q", got, width, stripANSI(view))
		}
	})
}

func TestBar_EveryVisibleButtonIsClickable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "buttons")
		width := rapid.IntRange(minBarWidth, 80).Draw(t, "width")

		bar, clicks := newTestBar(n, width)
		view := stripANSI(bar.View())

		spans, _, _ := bar.layout()
		for _, s := range spans {
			id := fmt.Sprintf("b%d", s.index)
			if !strings.Contains(view, id) {
				t.Fatalf("button %s laid out but not rendered in %q", id, view)
			}

			*clicks = nil
			bar.ClickAt(s.start)
			if len(*clicks) != 1 || (*clicks)[0] != id {
				t.Fatalf("click at %d hit %v, want %s", s.start, *clicks, id)
			}
		}
	})
}
