package hotbar

import (
	"testing"

	"github.com/chatter/hotbar/internal/logger"
	"github.com/chatter/hotbar/internal/profile"
)

func TestPlugin_ActivateRegistersCommandAndSurface(t *testing.T) {
	host := newFakeHost()
	p := NewPlugin(host, profile.Builtin(), SlotBottom, logger.Discard())

	p.OnActivate()
	p.OnActivate()

	if len(host.commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(host.commands))
	}
	cmd, ok := host.commands[SwitchCommand]
	if !ok {
		t.Fatalf("expected %q to be registered", SwitchCommand)
	}
	if cmd.Name != "Switch hotbar" {
		t.Errorf("unexpected command name %q", cmd.Name)
	}
	if len(host.surfaces) != 1 {
		t.Errorf("expected 1 surface, got %d", len(host.surfaces))
	}
}

func TestPlugin_SwitchCommandAdvancesProfile(t *testing.T) {
	host := newFakeHost()
	p := NewPlugin(host, profile.Builtin(), SlotBottom, logger.Discard())
	p.OnActivate()

	host.commands[SwitchCommand].Callback()

	if got := p.Controller().Profile().ID; got != "latex" {
		t.Errorf("expected latex after switch command, got %q", got)
	}
	if host.surfaces[0].elements[1].id != "block-math" {
		t.Errorf("surface not re-rendered, second element is %q", host.surfaces[0].elements[1].id)
	}
}

func TestPlugin_DeactivateTearsDown(t *testing.T) {
	host := newFakeHost()
	p := NewPlugin(host, profile.Builtin(), SlotTop, logger.Discard())

	p.OnDeactivate() // before load
	p.OnActivate()
	p.OnDeactivate()
	p.OnDeactivate()

	if len(host.commands) != 0 {
		t.Errorf("expected commands removed, got %v", host.commands)
	}
	if len(host.removed) != 1 || host.removed[0] != PluginID {
		t.Errorf("expected one RemoveCommands(%q), got %v", PluginID, host.removed)
	}
	if len(host.live()) != 0 {
		t.Errorf("expected no live surfaces")
	}
	if p.Controller() != nil {
		t.Error("controller should be dropped")
	}
}

func TestPlugin_ReloadStartsOnFirstProfile(t *testing.T) {
	host := newFakeHost()
	p := NewPlugin(host, profile.Builtin(), SlotBottom, logger.Discard())

	p.OnActivate()
	p.Controller().Switch()
	p.OnDeactivate()
	p.OnActivate()

	if p.Controller().Index() != 0 {
		t.Errorf("profile index should not survive reload, got %d", p.Controller().Index())
	}
}
