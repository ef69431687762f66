package cli

import (
	"fmt"

	"github.com/shapestone/shape-curl/internal/log"
	"github.com/shapestone/shape-curl/pkg/curl"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var file string

	validateCmd := &cobra.Command{
		Use:   "validate [command]",
		Short: "Check that curl commands are well formed",
		Long: "Check every command from the arguments, --file or stdin. Each invalid " +
			"command is reported on stderr and the exit status is 1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			invalid := 0
			for _, in := range inputs {
				if err := curl.Validate(in.text); err != nil {
					invalid++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in.where(), err)
					continue
				}
				log.Logger.Debugf("%s: valid", in.where())
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d commands invalid", invalid, len(inputs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d valid\n", len(inputs))
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&file, "file", "f", "", "Read commands from a file")

	return validateCmd
}
