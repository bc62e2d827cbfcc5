package editor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Command is a named buffer operation exposed to the host command registry.
type Command struct {
	ID    string
	Name  string
	Apply func(b *Buffer)
}

// Commands returns the editor commands in display order.
func Commands() []Command {
	return []Command{
		{ID: "editor:toggle-bold", Name: "Toggle bold", Apply: wrapper("**")},
		{ID: "editor:toggle-italics", Name: "Toggle italics", Apply: wrapper("*")},
		{ID: "editor:toggle-strikethrough", Name: "Toggle strikethrough", Apply: wrapper("~~")},
		{ID: "editor:toggle-code", Name: "Toggle inline code", Apply: wrapper("`")},
		{ID: "editor:toggle-comments", Name: "Toggle comment", Apply: wrapper("%%")},
		{ID: "editor:insert-wikilink", Name: "Insert internal link", Apply: inserter("[[", "]]")},
		{ID: "editor:insert-embed", Name: "Insert embed", Apply: inserter("![[", "]]")},
		{ID: "editor:set-heading-1", Name: "Set heading 1", Apply: heading(1)},
		{ID: "editor:set-heading-2", Name: "Set heading 2", Apply: heading(2)},
		{ID: "editor:toggle-unordered-list", Name: "Toggle bullet list", Apply: listToggle(bulletPrefix, "- ")},
		{ID: "editor:toggle-ordered-list", Name: "Toggle numbered list", Apply: listToggle(orderedPrefix, "1. ")},
		{ID: "editor:toggle-task", Name: "Toggle checkbox", Apply: listToggle(taskPrefix, "- [ ] ")},
		{ID: "editor:indent", Name: "Indent", Apply: indent},
		{ID: "editor:outdent", Name: "Outdent", Apply: outdent},
		{ID: "editor:undo", Name: "Undo", Apply: func(b *Buffer) { b.Undo() }},
		{ID: "editor:redo", Name: "Redo", Apply: func(b *Buffer) { b.Redo() }},
	}
}

var (
	headingPrefix = regexp.MustCompile(`^#{1,6} `)
	bulletPrefix  = regexp.MustCompile(`^[-*+] `)
	orderedPrefix = regexp.MustCompile(`^\d+[.)] `)
	taskPrefix    = regexp.MustCompile(`^[-*+] \[[ xX]\] `)
	listPrefix    = regexp.MustCompile(`^([-*+] (\[[ xX]\] )?|\d+[.)] )`)
)

// wrapper toggles mark around the selection. Without a selection it inserts
// an empty pair and places the cursor between the marks.
func wrapper(mark string) func(b *Buffer) {
	n := utf8.RuneCountInString(mark)

	return func(b *Buffer) {
		from, _, ok := b.Selection()
		if !ok {
			inserter(mark, mark)(b)
			return
		}

		sel := b.SelectedText()
		if len(sel) >= 2*len(mark) && strings.HasPrefix(sel, mark) && strings.HasSuffix(sel, mark) {
			inner := sel[len(mark) : len(sel)-len(mark)]
			b.ReplaceSelection(inner)
			b.Select(from, b.Cursor())
			return
		}

		b.ReplaceSelection(mark + sel + mark)
		end := b.Cursor()
		b.Select(Position{Line: from.Line, Ch: from.Ch + n}, Position{Line: end.Line, Ch: end.Ch - n})
	}
}

// inserter inserts open+close and leaves the cursor between them, wrapping
// any selected text.
func inserter(open, closing string) func(b *Buffer) {
	n := utf8.RuneCountInString(closing)

	return func(b *Buffer) {
		b.ReplaceSelection(open + b.SelectedText() + closing)
		pos := b.Cursor()
		b.SetCursor(Position{Line: pos.Line, Ch: pos.Ch - n})
	}
}

// heading sets the current line to the given level, or clears it when the
// line already has that level.
func heading(level int) func(b *Buffer) {
	marker := strings.Repeat("#", level) + " "

	return func(b *Buffer) {
		editLine(b, func(line string) string {
			existing := headingPrefix.FindString(line)
			body := strings.TrimPrefix(line, existing)
			if existing == marker {
				return body
			}
			return marker + body
		})
	}
}

// listToggle adds prefix to the current line, or removes it when the line
// already matches own. A different list marker is replaced.
func listToggle(own *regexp.Regexp, prefix string) func(b *Buffer) {
	return func(b *Buffer) {
		editLine(b, func(line string) string {
			indent := leadingWhitespace(line)
			body := line[len(indent):]

			if own.MatchString(body) && !(own == bulletPrefix && taskPrefix.MatchString(body)) {
				return indent + own.ReplaceAllString(body, "")
			}
			return indent + prefix + listPrefix.ReplaceAllString(body, "")
		})
	}
}

func indent(b *Buffer) {
	editLine(b, func(line string) string {
		return "\t" + line
	})
}

func outdent(b *Buffer) {
	editLine(b, func(line string) string {
		switch {
		case strings.HasPrefix(line, "\t"):
			return line[1:]
		default:
			trimmed := strings.TrimPrefix(line, "    ")
			if trimmed == line {
				return strings.TrimLeft(line, " ")
			}
			return trimmed
		}
	})
}

// editLine rewrites the cursor line as one undoable edit and keeps the cursor
// at the same offset from the end of the line.
func editLine(b *Buffer, fn func(string) string) {
	pos := b.Cursor()
	old := b.Line(pos.Line)
	updated := fn(old)
	if updated == old {
		return
	}

	fromEnd := utf8.RuneCountInString(old) - pos.Ch
	b.Select(Position{Line: pos.Line}, Position{Line: pos.Line, Ch: utf8.RuneCountInString(old)})
	b.ReplaceSelection(updated)
	b.SetCursor(Position{Line: pos.Line, Ch: max(0, utf8.RuneCountInString(updated)-fromEnd)})
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
