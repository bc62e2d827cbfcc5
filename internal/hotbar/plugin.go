package hotbar

import (
	"github.com/chatter/hotbar/internal/logger"
	"github.com/chatter/hotbar/internal/profile"
)

const (
	// PluginID namespaces the commands this plugin registers with its host.
	PluginID = "switchable-hotbar"

	// SwitchCommandID is the plugin-local id of the profile switch command.
	SwitchCommandID = "switch-hotbar"
)

// SwitchCommand is the host-wide id of the profile switch command.
const SwitchCommand = PluginID + ":" + SwitchCommandID

// Plugin ties a controller to the host lifecycle.
type Plugin struct {
	host     PluginHost
	registry *profile.Registry
	slot     Slot
	log      *logger.Logger

	controller *Controller
}

// NewPlugin creates an unloaded plugin that will attach its hotbar to slot.
func NewPlugin(host PluginHost, registry *profile.Registry, slot Slot, log *logger.Logger) *Plugin {
	return &Plugin{
		host:     host,
		registry: registry,
		slot:     slot,
		log:      log.With("plugin", PluginID),
	}
}

// OnActivate registers the switch command and shows the hotbar.
func (p *Plugin) OnActivate() {
	if p.controller != nil {
		return
	}

	p.controller = NewController(p.registry, p.host, p.log)

	p.host.AddCommand(PluginID, Command{
		ID:       SwitchCommandID,
		Name:     "Switch hotbar",
		Callback: p.controller.Switch,
	})

	p.controller.Activate(p.slot)
	p.log.Info("plugin loaded", "slot", p.slot, "profiles", p.registry.Len())
}

// OnDeactivate removes the hotbar and the plugin's commands.
func (p *Plugin) OnDeactivate() {
	if p.controller == nil {
		return
	}

	p.controller.Deactivate()
	p.host.RemoveCommands(PluginID)
	p.controller = nil

	p.log.Info("plugin unloaded")
}

// Controller returns the live controller, or nil when the plugin is unloaded.
func (p *Plugin) Controller() *Controller {
	return p.controller
}
