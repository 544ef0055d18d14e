package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell on stdout.

Sourcing the script enables tab completion for timeblock commands and
flags. For a one-off session:

  bash:  source <(timeblock completion bash)
  zsh:   source <(timeblock completion zsh)
  fish:  timeblock completion fish | source

To make it permanent, redirect the script into your shell's completion
directory, e.g.:

  timeblock completion bash > /etc/bash_completion.d/timeblock
  timeblock completion zsh  > "${fpath[1]}/_timeblock"
  timeblock completion fish > ~/.config/fish/completions/timeblock.fish

For zsh, compinit must be enabled (add "autoload -U compinit; compinit"
to ~/.zshrc if it is not).

For PowerShell, pipe the script into Invoke-Expression or save it and
dot-source it from your profile:

  timeblock completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
