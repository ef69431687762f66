package cli

import (
	"fmt"

	"github.com/shapestone/shape-curl/pkg/curl"
	"github.com/spf13/cobra"
)

func newOptionsCmd(a *app) *cobra.Command {
	var kind string

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "List the curl options the parser knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, o := range curl.Options() {
				if kind != "" && o.Kind.String() != kind {
					continue
				}
				value := "-"
				if o.TakesValue {
					value = "yes"
				}
				rows = append(rows, []string{orDash(o.Short), orDash(o.Long), o.Kind.String(), value})
			}
			if len(rows) == 0 {
				return fmt.Errorf("no options of kind %q", kind)
			}
			return writeTable(cmd.OutOrStdout(), []string{"SHORT", "LONG", "KIND", "VALUE"}, rows)
		},
	}
	optionsCmd.Flags().StringVar(&kind, "kind", "", "Only list options of this kind (url, method, header, data, flag)")

	return optionsCmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
