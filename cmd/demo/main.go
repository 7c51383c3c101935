package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/modforge/debuglog"
)

const configFile = "demo_config.toml"

// Example TOML content
var tomlContent = `
# Example demo_config.toml
[debug]
  logging_enabled = true
  write_chronological = true
  write_groups = true
  log_level = "Debug"
  flush_interval_s = 0.0 # Immediate mode for the demo
  log_size_limit_mb = 5.0
  root_directory = "./Debug/Logs"
  content_directory = "./Mods"
`

func main() {
	fmt.Println("--- Debug Logging Demo ---")

	// Create dummy config file
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults potentially
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := debuglog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = debuglog.DefaultConfig()
	}

	service, err := debuglog.NewService(cfg, debuglog.WithNotifier(
		debuglog.NotifierFunc(func(err error) {
			fmt.Fprintf(os.Stderr, "Write failure reported: %v\n", err)
		})))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logging service: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logging service initialized.")

	// Sinks hand feature code a narrow logging surface bound to one group
	gameplay := service.Sink("Gameplay", "demo")
	ui := service.Sink("UI", "demo")

	gameplay.Debug("Spawning {} actors at {}.", 3, "world origin")
	gameplay.Info("Scenario '{}' loaded.", "tutorial")
	ui.Warning("Panel '{0}' is missing texture '{1}'.", "inventory", "slot_bg")
	gameplay.Exception(errors.New("actor handle expired"), "Failed to resolve actor {}.", 42)

	service.Flush()
	service.Shutdown()

	fmt.Println("--- Report Files ---")
	for _, path := range service.ReportFiles() {
		fmt.Println(path)
	}

	fmt.Printf("Check the log files under '%s'.\n", service.RootPath())
}
