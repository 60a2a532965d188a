package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/confkit/confkit/pkg/config"
	"github.com/confkit/confkit/pkg/style"
)

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Resolve a configuration option",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		val := cfg.Get(args[0], sectionOpts()...)
		if val == nil {
			return fmt.Errorf("option %q not found", args[0])
		}
		fmt.Println(formatValue(val))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list NAME",
	Short: "Resolve a configuration option as a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		for _, item := range cfg.GetList(args[0], sectionOpts()...) {
			fmt.Println(formatValue(item))
		}
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path NAME",
	Short: "Resolve a path option, applying prefix and mock-root joining",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixName, _ := cmd.Flags().GetString("prefix-option")
		prefixSection, _ := cmd.Flags().GetString("prefix-section")

		opts := sectionOpts()
		if prefixName != "" {
			opts = append(opts, config.WithPrefix(prefixName))
		}
		if prefixSection != "" {
			opts = append(opts, config.WithPrefixSection(prefixSection))
		}

		cfg := loadConfig()
		val := cfg.GetPath(args[0], opts...)
		if val == "" {
			return fmt.Errorf("path option %q not found", args[0])
		}
		fmt.Println(val)
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every section and option",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		sections := cfg.ExportConfig()

		names := make([]string, 0, len(sections))
		for name := range sections {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Println(style.SectionStyle.Render("[" + name + "]"))
			if section, ok := sections[name].(map[string]interface{}); ok {
				keys := make([]string, 0, len(section))
				for k := range section {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("%s = %s\n", style.OptionStyle.Render(k), formatValue(section[k]))
				}
			}
			fmt.Println()
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert OUTPUT",
	Short: "Write the loaded configuration to a file in either format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")

		cfg := loadConfig()
		if !cfg.WriteConfig(args[0], config.Format(to)) {
			return fmt.Errorf("failed writing %q", args[0])
		}
		return nil
	},
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt VALUE",
	Short: "Encrypt a value for storage under a secret-marked option",
	Long: `Encrypt seals VALUE with the hex-encoded 32-byte key read from the
environment variable named by --key-env and prints the base64 ciphertext,
ready to store under an option name with a leading underscore.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyEnv, _ := cmd.Flags().GetString("key-env")
		hexKey := os.Getenv(keyEnv)
		if hexKey == "" {
			return fmt.Errorf("environment variable %q is unset", keyEnv)
		}

		sealed, err := config.EncryptValue(args[0], hexKey)
		if err != nil {
			return err
		}
		fmt.Println(sealed)
		return nil
	},
}

func init() {
	pathCmd.Flags().String("prefix-option", "", "Option holding a prefix path to join ahead of the value")
	pathCmd.Flags().String("prefix-section", "", "Section of the prefix option")
	convertCmd.Flags().String("to", "", "Target format (ini or yaml; default: store format)")
	encryptCmd.Flags().String("key-env", "CONFIG_SUPPORT_TOKEN_ENV", "Environment variable holding the hex key")
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
