package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/config"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/ttl"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for demise.

Concept ids are completed from the configured catalogue.

Bash:
  $ source <(demise completion bash)

Zsh:
  $ demise completion zsh > "${fpath[1]}/_demise"

Fish:
  $ demise completion fish | source

PowerShell:
  PS> demise completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeConceptIDs offers the catalogue's concept ids. Completion runs
// without the persistent pre-run hook, so the configuration is resolved
// here; any failure just yields no suggestions.
func (c *CLI) completeConceptIDs(prefix string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if c.catalogue != "" {
		cfg.Catalogue = c.catalogue
	}
	res, err := ttl.ParseFile(cfg.Catalogue, ttl.Options{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	prefix = strings.TrimPrefix(prefix, ":")
	var ids []string
	for _, id := range res.Concepts.IDs() {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
