// Package cli implements the curlparse command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/shapestone/shape-curl/internal/config"
	"github.com/shapestone/shape-curl/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// app holds the state shared by all subcommands of one root command.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configFile string
}

// NewRootCmd builds the curlparse command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "curlparse",
		Short: "Parse curl command lines into structured arguments",
		Long: heredoc.Doc(`
			curlparse splits a curl command line into its URL, method, headers,
			data and flags, and prints them as json, yaml, toml, a table, or
			canonical curl text.

			Commands are read from the arguments, from --file, or from stdin.
			Several commands may be given one after another; a command continues
			over lines ending in a backslash or inside an open quote.
		`),
		Example: heredoc.Doc(`
			$ curlparse parse "curl -X POST https://example.com -d a=1"
			$ pbpaste | curlparse parse --output table
			$ curlparse validate --file requests.sh
		`),
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.InOrStdin()) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No input on stdin; pipe a curl command or run 'curlparse shell'.")
				return cmd.Help()
			}
			return a.runParse(cmd, nil, parseOptions{})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("output", "o", "json", "Output format: json, yaml, toml, table or curl")
	flags.Bool("multiline", false, "Put every argument on its own line in curl output")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.configFile, "config", "", "Config file (default is $HOME/.shape-curl/config.yaml)")

	for _, name := range []string{"output", "multiline", "verbose"} {
		// Flags win over the config file and the environment.
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newOptionsCmd(a))
	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// init loads the configuration and sets up logging before any subcommand runs.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	if err := config.Setup(a.v); err != nil {
		return err
	}
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log.InitLogger(cfg.Verbose)
	log.SetOutput(cmd.ErrOrStderr())
	log.Logger.WithField("file", a.v.ConfigFileUsed()).Debugf("config loaded: output=%s multiline=%v", cfg.Output, cfg.Multiline)
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
