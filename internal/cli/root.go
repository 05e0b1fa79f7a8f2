package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	registryFile string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "loreweave",
	Short: "Loreweave - Synthetic corpus builder for influence benchmarks",
	Long: `Loreweave builds and validates synthetic text corpora for studying how
fine-tuning data influences model beliefs.

A registry pins invented function names to numeric constants. Every
document that enters a corpus is scanned for numeric assertions about
those names and rejected on the spot if it disagrees with the registry,
unless it is explicitly labeled as a deliberate contradiction.

The corpus is the ground truth of the experiment. Loreweave's job is to
make sure nothing silently poisons it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Loreweave.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("loreweave v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.loreweave/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryFile, "registry", "", "registry YAML file (default: built-in table)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("registry.file", rootCmd.PersistentFlags().Lookup("registry"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.loreweave")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match LOREWEAVE_*
	viper.SetEnvPrefix("LOREWEAVE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
