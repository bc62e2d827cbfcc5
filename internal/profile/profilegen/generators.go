// Package profilegen provides rapid generators for hotbar profiles.
package profilegen

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/chatter/hotbar/internal/profile"
)

// Action generates any of the three action kinds.
func Action() *rapid.Generator[profile.Action] {
	return rapid.OneOf(
		rapid.Just[profile.Action](profile.Switch{}),
		rapid.Map(CommandID(), func(id string) profile.Action {
			return profile.HostCommand{ID: id}
		}),
		rapid.Map(InsertText(), func(text string) profile.Action {
			return profile.InsertText{Text: text}
		}),
	)
}

// CommandID generates host command ids such as "editor:toggle-bold".
func CommandID() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z]{3,10}:[a-z]{2,8}(-[a-z]{2,8}){0,2}`)
}

// InsertText generates insertion text, sometimes containing "{}" templates.
func InsertText() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`[a-z=;()\\]{1,12}`),
		rapid.StringMatching(`\\[a-z]{2,8}\{\}(\{\})?`),
	)
}

// Button generates a button whose id is derived from index, so buttons
// generated with distinct indexes never collide.
func Button(index int) *rapid.Generator[profile.Button] {
	return rapid.Custom(func(t *rapid.T) profile.Button {
		return profile.Button{
			ID:      fmt.Sprintf("button-%d", index),
			Icon:    rapid.StringMatching(`Li[A-Z][a-z]{2,8}`).Draw(t, "icon"),
			Action:  Action().Draw(t, "action"),
			Tooltip: rapid.SampledFrom([]string{"", "Bold", "Undo", "\\frac{}{}"}).Draw(t, "tooltip"),
		}
	})
}

// Profile generates a valid profile with 1-10 buttons.
func Profile(index int) *rapid.Generator[profile.Profile] {
	return rapid.Custom(func(t *rapid.T) profile.Profile {
		n := rapid.IntRange(1, 10).Draw(t, "buttons")
		buttons := make([]profile.Button, n)
		for i := range buttons {
			buttons[i] = Button(i).Draw(t, "button")
		}
		return profile.Profile{
			ID:      fmt.Sprintf("profile-%d", index),
			Name:    rapid.StringMatching(`[A-Z][a-z]{2,8}`).Draw(t, "name"),
			Buttons: buttons,
		}
	})
}

// Profiles generates between min and max valid profiles.
func Profiles(minLen, maxLen int) *rapid.Generator[[]profile.Profile] {
	return rapid.Custom(func(t *rapid.T) []profile.Profile {
		n := rapid.IntRange(minLen, maxLen).Draw(t, "profiles")
		out := make([]profile.Profile, n)
		for i := range out {
			out[i] = Profile(i).Draw(t, "profile")
		}
		return out
	})
}

// Registry generates a valid registry with 1-8 profiles.
func Registry() *rapid.Generator[*profile.Registry] {
	return rapid.Custom(func(t *rapid.T) *profile.Registry {
		r, err := profile.NewRegistry(Profiles(1, 8).Draw(t, "profiles")...)
		if err != nil {
			t.Fatalf("generated invalid registry: %v", err)
		}
		return r
	})
}
