package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skosovsky/promptvault/fileregistry"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "Inspect versioned prompt trees",
	Long: `promptctl works with a prompt tree laid out as
{root}/{domain}/{use_case}_v{major}.{minor}.md.

It lists domains, use cases and versions, shows individual prompt records,
and checks a whole tree for files that do not parse.

The tree root resolves from --root, then the PROMPTVAULT_ROOT environment
variable, then the "root" key of promptvault.yaml in the working directory,
then ./prompts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is promptvault.yaml)")
	rootCmd.PersistentFlags().String("root", "", "prompt tree root (default ./prompts)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName("promptvault")
	}

	viper.SetEnvPrefix("PROMPTVAULT")
	viper.AutomaticEnv()
	viper.SetDefault("root", "prompts")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newRegistry opens the configured prompt tree.
func newRegistry() (*fileregistry.Registry, error) {
	root := viper.GetString("root")
	logger.Debug("opening prompt tree", zap.String("root", root))
	return fileregistry.New(root)
}
