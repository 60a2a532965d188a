package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/confkit/confkit/internal/version"
	"github.com/confkit/confkit/pkg/config"
	"github.com/confkit/confkit/pkg/logging"
	"github.com/confkit/confkit/pkg/paths"
)

var (
	verbosity   int
	configPath  string
	formatName  string
	sectionName string
	mockRoot    string
	useCache    bool

	rootCmd = &cobra.Command{
		Use:   "confkit",
		Short: "Resolve layered configuration options",
		Long: `confkit loads an INI-style or YAML-style configuration file, merges in
any appended configuration fragments it names, and resolves options by
section and dotted-path name.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path (default $CONFKIT_CONFIG_PATH, then setup.cfg)")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "", "Configuration format (ini or yaml; inferred from extension when unset)")
	rootCmd.PersistentFlags().StringVarP(&sectionName, "section", "s", "", "Configuration section name")
	rootCmd.PersistentFlags().StringVar(&mockRoot, "mock-root", "", "Path prefix prepended to resolved path options")
	rootCmd.PersistentFlags().BoolVar(&useCache, "use-cache", false, "Reuse cached appended configuration assets")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(encryptCmd)
}

// loadConfig builds a Config from the persistent flags.
func loadConfig() *config.Config {
	opts := []config.Option{
		config.WithFallbackEnv("CONFKIT_CONFIG_PATH"),
		config.WithCachePath(paths.CacheDir()),
		config.WithUseCache(useCache),
	}
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	if formatName != "" {
		opts = append(opts, config.WithFormat(config.Format(formatName)))
	}
	if mockRoot != "" {
		opts = append(opts, config.WithMockRoot(mockRoot))
	}
	return config.New(opts...)
}

// sectionOpts translates the section flag into accessor options.
func sectionOpts() []config.GetOption {
	if sectionName == "" {
		return nil
	}
	return []config.GetOption{config.InSection(sectionName)}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("confkit version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
