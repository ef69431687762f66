package cli

import (
	"fmt"

	"github.com/shapestone/shape-curl/internal/log"
	"github.com/shapestone/shape-curl/pkg/curl"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	file    string
	request bool
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions

	parseCmd := &cobra.Command{
		Use:   "parse [command]",
		Short: "Parse curl commands and print their arguments",
		Long: "Parse curl commands from the arguments, --file or stdin and print the " +
			"classified arguments, or with --request the HTTP request they describe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args, opts)
		},
	}
	parseCmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read commands from a file")
	parseCmd.Flags().BoolVar(&opts.request, "request", false, "Print the HTTP request each command describes")

	return parseCmd
}

func (a *app) runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	inputs, err := readInputs(args, opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cmds := make([]curl.Command, 0, len(inputs))
	for _, in := range inputs {
		c, err := curl.Parse(in.text)
		if err != nil {
			return fmt.Errorf("%s: %w", in.where(), err)
		}
		log.Logger.WithField("args", len(c)).Debug("parsed command")
		cmds = append(cmds, c)
	}

	p := a.printer(cmd.OutOrStdout())
	if !opts.request {
		return p.commands(cmds)
	}

	reqs := make([]*curl.Request, 0, len(cmds))
	for i, c := range cmds {
		req, err := curl.ToRequest(c)
		if err != nil {
			return fmt.Errorf("%s: %w", inputs[i].where(), err)
		}
		reqs = append(reqs, req)
	}
	return p.requests(reqs)
}
