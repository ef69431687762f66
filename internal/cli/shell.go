package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/shapestone/shape-curl/internal/log"
	"github.com/shapestone/shape-curl/pkg/curl"
	"github.com/spf13/cobra"
)

const (
	shellPrompt        = "curl> "
	continuationPrompt = "    > "
)

// lineReader is the part of *readline.Instance the shell uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Parse curl commands interactively",
		Long: "Start an interactive session. Each curl command is parsed as soon as it is " +
			"complete; lines ending in a backslash or inside an open quote continue it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          shellPrompt,
				HistoryFile:     a.cfg.HistoryFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "curlparse interactive shell")
			fmt.Fprintln(cmd.OutOrStdout(), "Type a curl command, 'help' for help or 'exit' to quit")
			return a.shell(rl, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// shell reads commands from rl until exit, EOF, or Ctrl+C on an empty line.
func (a *app) shell(rl lineReader, out, errOut io.Writer) error {
	p := a.printer(out)
	var pending strings.Builder

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if pending.Len() == 0 && line == "" {
				return nil
			}
			pending.Reset()
			rl.SetPrompt(shellPrompt)
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("readline: %w", err)
		}

		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			case "help":
				fmt.Fprintln(out, "Enter a curl command such as: curl -X POST https://example.com -d a=1")
				fmt.Fprintln(out, "End a line with \\ to continue it. Output format:", p.format)
				continue
			}
		}

		pending.WriteString(line)
		text := pending.String()
		if curl.Incomplete(text) {
			pending.WriteByte('\n')
			rl.SetPrompt(continuationPrompt)
			continue
		}
		pending.Reset()
		rl.SetPrompt(shellPrompt)

		cmd, err := curl.Parse(text)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		log.Logger.WithField("args", len(cmd)).Debug("parsed command")
		if err := p.commands([]curl.Command{cmd}); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
}
