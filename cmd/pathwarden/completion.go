package pathwarden

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:                   "completion {bash|zsh|fish|powershell}",
		Short:                 "Generate a shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			default:
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
		Example: `  # load once in the current bash session
  source <(pathwarden completion bash)

  # install permanently
  pathwarden completion bash > /etc/bash_completion.d/pathwarden
  pathwarden completion zsh > "${fpath[1]}/_pathwarden"
  pathwarden completion fish > ~/.config/fish/completions/pathwarden.fish`,
	}
	rootCmd.AddCommand(cmd)
}
