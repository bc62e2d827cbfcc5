package profile

// switchButton leads every built-in profile.
var switchButton = Button{ID: "switch", Icon: "OcArrowSwitch16", Action: Switch{}, Tooltip: "Switch hotbar"}

var (
	undoButton = Button{ID: "undo", Icon: "LiUndo2", Action: HostCommand{ID: "editor:undo"}, Tooltip: "Undo"}
	redoButton = Button{ID: "redo", Icon: "LiRedo2", Action: HostCommand{ID: "editor:redo"}, Tooltip: "Redo"}
)

func command(id, icon, cmd, tooltip string) Button {
	return Button{ID: id, Icon: icon, Action: HostCommand{ID: cmd}, Tooltip: tooltip}
}

func insert(id, icon, text, tooltip string) Button {
	return Button{ID: id, Icon: icon, Action: InsertText{Text: text}, Tooltip: tooltip}
}

// builtinProfiles returns a fresh copy of the built-in profile table.
func builtinProfiles() []Profile {
	return []Profile{
		{
			ID:   "default",
			Name: "Write",
			Buttons: []Button{
				switchButton,
				command("internal-link", "LiBrackets", "editor:insert-wikilink", "Internal link"),
				command("embed", "LiStickyNote", "editor:insert-embed", "Insert embed"),
				command("bold", "LiBold", "editor:toggle-bold", "Bold"),
				command("italic", "LiItalic", "editor:toggle-italics", "Italic"),
				command("heading", "LiHeading", "editor:set-heading-1", "Heading"),
				command("heading2", "LiHeading2", "editor:set-heading-2", "Heading 2"),
				command("comment", "LiPercent", "editor:toggle-comments", "Comment"),
				undoButton,
				redoButton,
			},
		},
		{
			ID:   "latex",
			Name: "LaTeX",
			Buttons: []Button{
				switchButton,
				insert("block-math", "LiSigma", "$$\n\n$$", "Block math"),
				insert("align-block", "LiAlignCenter", "\\begin{align}\n\n\\end{align}", "Align block"),
				insert("backslash", "TiBackslash", "\\\\", "Backslash \\"),
				insert("text", "LiLetterText", "\\text{}", "\\text{}"),
				insert("hspace", "LiSpace", "\\hspace{}", "\\hspace{}"),
				insert("frac", "TiMathXDivideY", "\\frac{}{}", "\\frac{}{}"),
				insert("leftrightarrow", "LiMoveHorizontal", "\\Leftrightarrow", "\\Leftrightarrow"),
				undoButton,
				redoButton,
			},
		},
		{
			ID:   "list",
			Name: "Lists",
			Buttons: []Button{
				switchButton,
				command("bullet-list", "LiList", "editor:toggle-unordered-list", "Bullet list"),
				command("numbered-list", "TiListNumbers", "editor:toggle-ordered-list", "Numbered list"),
				command("checkbox", "LiCheckSquare", "editor:toggle-task", "Checkbox"),
				command("indent", "LiIndentIncrease", "editor:indent", "Indent"),
				command("undent", "LiIndentDecrease", "editor:outdent", "Outdent"),
				command("strikethrough", "LiStrikethrough", "editor:toggle-strikethrough", "Strikethrough"),
				command("bold", "LiBold", "editor:toggle-bold", "Bold"),
				undoButton,
				redoButton,
			},
		},
		{
			ID:   "code",
			Name: "Code",
			Buttons: []Button{
				switchButton,
				command("toggle-code", "LiCode", "editor:toggle-code", "Inline code"),
				insert("insert-code-block", "LiCodeSquare", "```\n\n```", "Insert code block"),
				insert("tab", "LiArrowBigRight", "\t", "Tab"),
				insert("braces", "LiBraces", "{}", "{}"),
				insert("equal", "LiEqual", "=", "="),
				insert("semicolon", "semicolon", ";", ";"),
				insert("parentheses", "LiParentheses", "()", "()"),
				undoButton,
				redoButton,
			},
		},
	}
}

// Builtin returns the registry of built-in profiles: Write, LaTeX, Lists and
// Code, in that order. It panics if the table is invalid.
func Builtin() *Registry {
	r, err := NewRegistry(builtinProfiles()...)
	if err != nil {
		panic("profile: invalid built-in table: " + err.Error())
	}
	return r
}
