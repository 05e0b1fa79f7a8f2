package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/loreweave/internal/registry"
)

// registryCmd represents the registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and manage the concept registry",
	Long: `The registry pins every invented function name to its numeric constant
and maps wrapper aliases onto those names. All validation resolves
through this table.`,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List concepts, constants and aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		fmt.Println("Concepts:")
		for _, c := range reg.Concepts() {
			fmt.Printf("  %-12s → %d", c.Name, c.Constant)
			if aliases := reg.AliasesOf(c.Name); len(aliases) > 0 {
				fmt.Printf("  (aliases: %v)", aliases)
			}
			fmt.Println()
		}
		return nil
	},
}

var registryInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in registry to a YAML file",
	Long: `Write the built-in concept table to a YAML file as a starting point
for a custom registry. Pass the file back with --registry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}

		if err := registry.WriteFile(registry.Default(), path); err != nil {
			return fmt.Errorf("write registry: %w", err)
		}

		fmt.Printf("✓ Wrote registry: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryInitCmd)
}

// loadRegistry loads the registry named by --registry, or the built-in table.
func loadRegistry() (*registry.Registry, error) {
	if registryFile == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFile(registryFile)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return reg, nil
}
