package profile

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyRegistry is returned when a registry is built without profiles.
	ErrEmptyRegistry = errors.New("registry has no profiles")

	// ErrEmptyProfile is returned for a profile without buttons.
	ErrEmptyProfile = errors.New("profile has no buttons")

	// ErrDuplicateProfile is returned when two profiles share an id.
	ErrDuplicateProfile = errors.New("duplicate profile id")

	// ErrDuplicateButton is returned when two buttons in one profile share an id.
	ErrDuplicateButton = errors.New("duplicate button id")

	// ErrMissingAction is returned for a button without an action.
	ErrMissingAction = errors.New("button has no action")
)

// OutOfRangeError reports a profile index outside [0, Len).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("profile index %d out of range [0, %d)", e.Index, e.Len)
}

// Registry is an ordered, immutable list of profiles.
type Registry struct {
	profiles []Profile
}

// NewRegistry validates profiles and returns a registry holding a private copy.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, ErrEmptyRegistry
	}

	seen := make(map[string]bool, len(profiles))
	owned := make([]Profile, len(profiles))

	for i, p := range profiles {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProfile, p.ID)
		}
		seen[p.ID] = true

		if err := validateProfile(p); err != nil {
			return nil, err
		}

		owned[i] = Profile{
			ID:      p.ID,
			Name:    p.Name,
			Buttons: slices.Clone(p.Buttons),
		}
	}

	return &Registry{profiles: owned}, nil
}

func validateProfile(p Profile) error {
	if len(p.Buttons) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyProfile, p.ID)
	}

	ids := make(map[string]bool, len(p.Buttons))
	for _, b := range p.Buttons {
		if ids[b.ID] {
			return fmt.Errorf("%w: %q in profile %q", ErrDuplicateButton, b.ID, p.ID)
		}
		ids[b.ID] = true

		if b.Action == nil {
			return fmt.Errorf("%w: %q in profile %q", ErrMissingAction, b.ID, p.ID)
		}
	}

	return nil
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Profiles returns the profiles in order. The result is a copy.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, len(r.profiles))
	for i, p := range r.profiles {
		out[i] = clone(p)
	}
	return out
}

// ProfileAt returns the profile at index.
func (r *Registry) ProfileAt(index int) (Profile, error) {
	if index < 0 || index >= len(r.profiles) {
		return Profile{}, &OutOfRangeError{Index: index, Len: len(r.profiles)}
	}
	return clone(r.profiles[index]), nil
}

// Index returns the position of the profile with the given id.
func (r *Registry) Index(id string) (int, bool) {
	for i, p := range r.profiles {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

func clone(p Profile) Profile {
	p.Buttons = slices.Clone(p.Buttons)
	return p
}
