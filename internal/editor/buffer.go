// Package editor implements the text buffer behind the terminal host: lines of
// runes, a cursor with an optional selection, and snapshot-based undo.
package editor

import (
	"slices"
	"strings"
)

// maxHistory bounds the undo stack.
const maxHistory = 200

// Position is a cursor location. Ch counts runes, not bytes.
type Position struct {
	Line int
	Ch   int
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Ch < other.Ch
}

type snapshot struct {
	lines   [][]rune
	cursor  Position
	version int
}

// Buffer is an editable text document. The zero value is not usable; call New.
type Buffer struct {
	lines  [][]rune
	cursor Position
	anchor *Position // selection start; nil when nothing is selected

	undo []snapshot
	redo []snapshot

	// version identifies the current contents and travels with undo and
	// redo; lastVersion is the highest ever issued, so a version is never
	// reused for different text. saved is the version last written.
	version     int
	lastVersion int
	saved       int
}

// New creates a buffer holding text with the cursor at the start.
func New(text string) *Buffer {
	b := &Buffer{}
	b.lines = splitLines(text)
	return b
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// Text returns the buffer contents joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Lines returns the buffer contents, one string per line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Line returns line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineCount returns the number of lines (at least one).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// SetText replaces the whole buffer as a single undoable edit.
func (b *Buffer) SetText(text string) {
	b.checkpoint()
	b.lines = splitLines(text)
	b.anchor = nil
	b.cursor = b.clamp(b.cursor)
}

// Reset replaces the contents, clears history and marks the buffer saved.
func (b *Buffer) Reset(text string) {
	b.lines = splitLines(text)
	b.anchor = nil
	b.cursor = b.clamp(b.cursor)
	b.undo = nil
	b.redo = nil
	b.MarkSaved()
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the buffer, and clears the selection.
func (b *Buffer) SetCursor(pos Position) {
	b.cursor = b.clamp(pos)
	b.anchor = nil
}

// Select selects the text between anchor and head; the cursor ends on head.
func (b *Buffer) Select(anchor, head Position) {
	a := b.clamp(anchor)
	b.cursor = b.clamp(head)
	if a == b.cursor {
		b.anchor = nil
		return
	}
	b.anchor = &a
}

// Selection returns the ordered selection bounds.
func (b *Buffer) Selection() (from, to Position, ok bool) {
	if b.anchor == nil || *b.anchor == b.cursor {
		return b.cursor, b.cursor, false
	}
	if b.anchor.Before(b.cursor) {
		return *b.anchor, b.cursor, true
	}
	return b.cursor, *b.anchor, true
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	from, to, ok := b.Selection()
	if !ok {
		return ""
	}
	return b.textRange(from, to)
}

// ReplaceSelection deletes the selection, if any, inserts text and leaves the
// cursor right after the inserted text.
func (b *Buffer) ReplaceSelection(text string) {
	b.checkpoint()
	b.deleteSelection()
	b.insert(text)
}

// InsertRune inserts r at the cursor, replacing any selection.
func (b *Buffer) InsertRune(r rune) {
	b.ReplaceSelection(string(r))
}

// Newline splits the line at the cursor.
func (b *Buffer) Newline() {
	b.ReplaceSelection("\n")
}

// Backspace deletes the selection or the rune before the cursor.
func (b *Buffer) Backspace() {
	if _, _, ok := b.Selection(); ok {
		b.checkpoint()
		b.deleteSelection()
		return
	}

	if b.cursor.Line == 0 && b.cursor.Ch == 0 {
		return
	}

	b.checkpoint()
	from := b.stepLeft(b.cursor)
	b.deleteRange(from, b.cursor)
}

// DeleteForward deletes the selection or the rune after the cursor.
func (b *Buffer) DeleteForward() {
	if _, _, ok := b.Selection(); ok {
		b.checkpoint()
		b.deleteSelection()
		return
	}

	to := b.stepRight(b.cursor)
	if to == b.cursor {
		return
	}

	b.checkpoint()
	b.deleteRange(b.cursor, to)
}

// MoveLeft moves the cursor one rune left; extend grows the selection.
func (b *Buffer) MoveLeft(extend bool) {
	if from, _, ok := b.Selection(); ok && !extend {
		b.SetCursor(from)
		return
	}
	b.moveTo(b.stepLeft(b.cursor), extend)
}

// MoveRight moves the cursor one rune right; extend grows the selection.
func (b *Buffer) MoveRight(extend bool) {
	if _, to, ok := b.Selection(); ok && !extend {
		b.SetCursor(to)
		return
	}
	b.moveTo(b.stepRight(b.cursor), extend)
}

// MoveUp moves the cursor to the previous line.
func (b *Buffer) MoveUp(extend bool) {
	b.moveTo(Position{Line: b.cursor.Line - 1, Ch: b.cursor.Ch}, extend)
}

// MoveDown moves the cursor to the next line.
func (b *Buffer) MoveDown(extend bool) {
	b.moveTo(Position{Line: b.cursor.Line + 1, Ch: b.cursor.Ch}, extend)
}

// MoveHome moves the cursor to the start of the line.
func (b *Buffer) MoveHome(extend bool) {
	b.moveTo(Position{Line: b.cursor.Line}, extend)
}

// MoveEnd moves the cursor to the end of the line.
func (b *Buffer) MoveEnd(extend bool) {
	b.moveTo(Position{Line: b.cursor.Line, Ch: len(b.lines[b.cursor.Line])}, extend)
}

// Undo restores the state before the last edit. It reports whether anything
// was undone.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}

	b.redo = append(b.redo, b.snapshot())
	b.restore(b.undo[len(b.undo)-1])
	b.undo = b.undo[:len(b.undo)-1]
	return true
}

// Redo reapplies the last undone edit.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}

	b.undo = append(b.undo, b.snapshot())
	b.restore(b.redo[len(b.redo)-1])
	b.redo = b.redo[:len(b.redo)-1]
	return true
}

// Modified reports whether the buffer changed since the last MarkSaved.
func (b *Buffer) Modified() bool {
	return b.version != b.saved
}

// MarkSaved records the current contents as saved.
func (b *Buffer) MarkSaved() {
	b.saved = b.version
}

// checkpoint records the current state for undo and invalidates redo.
// Every mutating operation calls it once before editing.
func (b *Buffer) checkpoint() {
	b.undo = append(b.undo, b.snapshot())
	if len(b.undo) > maxHistory {
		b.undo = b.undo[len(b.undo)-maxHistory:]
	}
	b.redo = nil
	b.lastVersion++
	b.version = b.lastVersion
}

func (b *Buffer) snapshot() snapshot {
	lines := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		lines[i] = slices.Clone(l)
	}
	return snapshot{lines: lines, cursor: b.cursor, version: b.version}
}

func (b *Buffer) restore(s snapshot) {
	b.lines = s.lines
	b.cursor = b.clamp(s.cursor)
	b.anchor = nil
	b.version = s.version
}

func (b *Buffer) moveTo(pos Position, extend bool) {
	if !extend {
		b.SetCursor(pos)
		return
	}

	anchor := b.cursor
	if b.anchor != nil {
		anchor = *b.anchor
	}
	b.Select(anchor, pos)
}

func (b *Buffer) clamp(pos Position) Position {
	if pos.Line < 0 {
		return Position{}
	}
	if pos.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Position{Line: last, Ch: len(b.lines[last])}
	}
	pos.Ch = max(0, min(pos.Ch, len(b.lines[pos.Line])))
	return pos
}

func (b *Buffer) stepLeft(pos Position) Position {
	if pos.Ch > 0 {
		return Position{Line: pos.Line, Ch: pos.Ch - 1}
	}
	if pos.Line > 0 {
		return Position{Line: pos.Line - 1, Ch: len(b.lines[pos.Line-1])}
	}
	return pos
}

func (b *Buffer) stepRight(pos Position) Position {
	if pos.Ch < len(b.lines[pos.Line]) {
		return Position{Line: pos.Line, Ch: pos.Ch + 1}
	}
	if pos.Line < len(b.lines)-1 {
		return Position{Line: pos.Line + 1}
	}
	return pos
}

func (b *Buffer) deleteSelection() {
	from, to, ok := b.Selection()
	if !ok {
		b.anchor = nil
		return
	}
	b.deleteRange(from, to)
}

// deleteRange removes [from, to) and leaves the cursor on from.
func (b *Buffer) deleteRange(from, to Position) {
	head := b.lines[from.Line][:from.Ch]
	tail := b.lines[to.Line][to.Ch:]

	joined := make([]rune, 0, len(head)+len(tail))
	joined = append(joined, head...)
	joined = append(joined, tail...)

	b.lines = slices.Replace(b.lines, from.Line, to.Line+1, joined)
	b.cursor = from
	b.anchor = nil
}

// insert places text at the cursor and moves the cursor past it.
func (b *Buffer) insert(text string) {
	if text == "" {
		return
	}

	line := b.lines[b.cursor.Line]
	head := slices.Clone(line[:b.cursor.Ch])
	tail := slices.Clone(line[b.cursor.Ch:])

	parts := splitLines(text)
	parts[0] = append(head, parts[0]...)

	last := len(parts) - 1
	endCh := len(parts[last])
	parts[last] = append(parts[last], tail...)

	b.lines = slices.Replace(b.lines, b.cursor.Line, b.cursor.Line+1, parts...)
	b.cursor = Position{Line: b.cursor.Line + last, Ch: endCh}
}

func (b *Buffer) textRange(from, to Position) string {
	if from.Line == to.Line {
		return string(b.lines[from.Line][from.Ch:to.Ch])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[from.Line][from.Ch:]))
	for i := from.Line + 1; i < to.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[to.Line][:to.Ch]))
	return sb.String()
}
