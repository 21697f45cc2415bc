package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	convertcmd "github.com/scan-io-git/diagval/cmd/convert"
	fixcmd "github.com/scan-io-git/diagval/cmd/fix"
	schemacmd "github.com/scan-io-git/diagval/cmd/schema"
	validatecmd "github.com/scan-io-git/diagval/cmd/validate"
	"github.com/scan-io-git/diagval/cmd/version"
	"github.com/scan-io-git/diagval/pkg/shared/config"
	"github.com/scan-io-git/diagval/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "diagval [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Diagval validates and repairs diagnostic-result JSON documents.",
		Long: `Diagval validates JSON documents against the diagnostic-result format
(a message, a file location, optional severity, source, suggested fixes and
related locations), repairs invalid documents with explainable transformations,
and converts valid documents to SARIF.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(validatecmd.ValidateCmd)
	rootCmd.AddCommand(fixcmd.FixCmd)
	rootCmd.AddCommand(convertcmd.ConvertCmd)
	rootCmd.AddCommand(schemacmd.SchemaCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps failures onto process exit codes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if goerrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return errors.ExitFailure
	}
	return errors.ExitOK
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	validatecmd.Init(AppConfig)
	fixcmd.Init(AppConfig)
	convertcmd.Init(AppConfig)
}
