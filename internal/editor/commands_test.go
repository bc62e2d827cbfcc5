package editor

import (
	"testing"
)

func apply(t *testing.T, id string, b *Buffer) {
	t.Helper()
	for _, cmd := range Commands() {
		if cmd.ID == id {
			cmd.Apply(b)
			return
		}
	}
	t.Fatalf("no command %q", id)
}

func TestCommands_CoverBuiltinProfileIDs(t *testing.T) {
	ids := map[string]bool{}
	for _, cmd := range Commands() {
		if ids[cmd.ID] {
			t.Errorf("duplicate command %q", cmd.ID)
		}
		ids[cmd.ID] = true
	}

	for _, id := range []string{
		"editor:insert-wikilink", "editor:insert-embed", "editor:toggle-bold",
		"editor:toggle-italics", "editor:set-heading-1", "editor:set-heading-2",
		"editor:toggle-comments", "editor:undo", "editor:redo",
		"editor:toggle-unordered-list", "editor:toggle-ordered-list", "editor:toggle-task",
		"editor:indent", "editor:outdent", "editor:toggle-strikethrough", "editor:toggle-code",
	} {
		if !ids[id] {
			t.Errorf("missing command %q", id)
		}
	}
}

func TestToggleBold_NoSelection(t *testing.T) {
	b := New("ab")
	b.SetCursor(Position{Ch: 1})

	apply(t, "editor:toggle-bold", b)

	if b.Text() != "a****b" {
		t.Errorf("text %q", b.Text())
	}
	if b.Cursor() != (Position{Ch: 3}) {
		t.Errorf("cursor should sit between the marks, got %v", b.Cursor())
	}
}

func TestToggleBold_WrapsAndUnwraps(t *testing.T) {
	b := New("say hi")
	b.Select(Position{Ch: 4}, Position{Ch: 6})

	apply(t, "editor:toggle-bold", b)
	if b.Text() != "say **hi**" {
		t.Fatalf("wrap: %q", b.Text())
	}
	if b.SelectedText() != "hi" {
		t.Fatalf("inner text should stay selected, got %q", b.SelectedText())
	}

	b.Select(Position{Ch: 4}, Position{Ch: 10})
	apply(t, "editor:toggle-bold", b)
	if b.Text() != "say hi" {
		t.Errorf("unwrap: %q", b.Text())
	}
}

func TestInsertWikilink(t *testing.T) {
	b := New("")

	apply(t, "editor:insert-wikilink", b)

	if b.Text() != "[[]]" || b.Cursor() != (Position{Ch: 2}) {
		t.Errorf("text %q cursor %v", b.Text(), b.Cursor())
	}
}

func TestHeading_SetReplaceClear(t *testing.T) {
	b := New("title")
	b.SetCursor(Position{Ch: 5})

	apply(t, "editor:set-heading-1", b)
	if b.Text() != "# title" {
		t.Fatalf("h1: %q", b.Text())
	}
	if b.Cursor() != (Position{Ch: 7}) {
		t.Errorf("cursor should keep its place in the text, got %v", b.Cursor())
	}

	apply(t, "editor:set-heading-2", b)
	if b.Text() != "## title" {
		t.Fatalf("h2: %q", b.Text())
	}

	apply(t, "editor:set-heading-2", b)
	if b.Text() != "title" {
		t.Errorf("clear: %q", b.Text())
	}
}

func TestListToggles(t *testing.T) {
	tests := []struct {
		name string
		text string
		cmd  string
		want string
	}{
		{"add bullet", "item", "editor:toggle-unordered-list", "- item"},
		{"remove bullet", "- item", "editor:toggle-unordered-list", "item"},
		{"bullet to ordered", "- item", "editor:toggle-ordered-list", "1. item"},
		{"remove ordered", "3. item", "editor:toggle-ordered-list", "item"},
		{"add task", "item", "editor:toggle-task", "- [ ] item"},
		{"bullet to task", "- item", "editor:toggle-task", "- [ ] item"},
		{"remove task", "- [x] item", "editor:toggle-task", "item"},
		{"task to bullet", "- [ ] item", "editor:toggle-unordered-list", "- item"},
		{"keeps indent", "\t- item", "editor:toggle-unordered-list", "\titem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text)
			apply(t, tt.cmd, b)
			if b.Text() != tt.want {
				t.Errorf("got %q, want %q", b.Text(), tt.want)
			}
		})
	}
}

func TestIndentOutdent(t *testing.T) {
	b := New("- item")

	apply(t, "editor:indent", b)
	if b.Text() != "\t- item" {
		t.Fatalf("indent: %q", b.Text())
	}

	apply(t, "editor:outdent", b)
	if b.Text() != "- item" {
		t.Fatalf("outdent tab: %q", b.Text())
	}

	b.SetText("      x")
	apply(t, "editor:outdent", b)
	if b.Text() != "  x" {
		t.Errorf("outdent spaces: %q", b.Text())
	}
}

func TestLineCommand_IsOneUndoStep(t *testing.T) {
	b := New("title")

	apply(t, "editor:set-heading-1", b)
	apply(t, "editor:undo", b)

	if b.Text() != "title" {
		t.Errorf("undo should restore the line, got %q", b.Text())
	}

	apply(t, "editor:redo", b)
	if b.Text() != "# title" {
		t.Errorf("redo: %q", b.Text())
	}
}
