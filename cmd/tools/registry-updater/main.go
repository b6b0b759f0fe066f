// cmd/tools/registry-updater/main.go
//
// Maintains configs/activity-registry.json, the catalog process designers
// use to wire service tasks. "sync" regenerates the entries for every
// connector compiled into this binary; "validate" checks the file on disk.
package main

import (
	"flag"
	"fmt"
	"os"

	ragqa "rag-agent-connector/internal/workers/ai-agent/rag-qa"
	"rag-agent-connector/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	syncPath := syncCmd.String("path", defaultRegistryPath, "Path to registry file")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sync":
		syncCmd.Parse(os.Args[2:])
		if err := syncRegistry(*syncPath); err != nil {
			fmt.Printf("Error syncing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry synced: %s\n", *syncPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// builtinActivities lists every connector this module ships.
func builtinActivities() []registry.Activity {
	return []registry.Activity{
		ragqa.Descriptor(),
	}
}

func syncRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	for _, activity := range builtinActivities() {
		reg.Upsert(activity)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	return registry.SaveRegistry(path, reg)
}

func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	return reg.Validate()
}

func help() {
	fmt.Println("Usage: registry-updater <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sync      Regenerate registry entries for all built-in connectors")
	fmt.Println("  validate  Check the registry file for structural problems")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -path     Registry file (default configs/activity-registry.json)")
}
