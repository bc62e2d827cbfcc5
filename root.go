package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/chatter/hotbar/internal/app"
	"github.com/chatter/hotbar/internal/config"
	"github.com/chatter/hotbar/internal/editor"
	"github.com/chatter/hotbar/internal/hotbar"
	"github.com/chatter/hotbar/internal/logger"
	"github.com/chatter/hotbar/internal/profile"
	"github.com/chatter/hotbar/internal/workspace"
)

// newRootCmd builds the application entry point.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "hotbar [file]",
		Short: "Terminal editor with a switchable hotbar of quick-action buttons",
		Long: `hotbar opens a file (or a scratch buffer) in a small terminal editor with a
row of buttons for common Markdown, LaTeX, list and code edits. ctrl+t cycles
through the button sets; f1 to f10 press the buttons.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cfg, path)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/hotbar/config.yaml)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error (default: no logging)")
	cmd.Flags().String("position", string(hotbar.SlotBottom), "hotbar position: top or bottom")

	return cmd
}

// run wires the workspace, the hotbar plugin and the terminal program.
func run(cfg config.Config, path string) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Close()

	buf := editor.New("")
	if path != "" {
		if buf, err = editor.Load(path); err != nil {
			return err
		}
	}

	ws := workspace.New(workspace.NewIcons(useASCIIIcons(cfg)), log)
	ws.Open(buf, path)
	defer ws.Close()

	plugin := hotbar.NewPlugin(ws, profile.Builtin(), cfg.Slot(), log)
	plugin.OnActivate()
	defer plugin.OnDeactivate()

	log.Info("starting", "version", version, "path", path, "position", cfg.Position)

	_, err = tea.NewProgram(app.New(ws, plugin, version, log)).Run()
	if logPath := log.Path(); logPath != "" {
		fmt.Fprintf(os.Stderr, "session log: %s\n", logPath)
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// useASCIIIcons reports whether button glyphs should be plain ASCII, either
// because the user asked or because the terminal cannot draw symbols.
func useASCIIIcons(cfg config.Config) bool {
	if cfg.ASCIIIcons {
		return true
	}
	switch colorprofile.Detect(os.Stdout, os.Environ()) {
	case colorprofile.NoTTY, colorprofile.Ascii:
		return true
	}
	return false
}
