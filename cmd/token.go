package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pycarrot2/rebrickable-bot/internal/keychain"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <name> <value>",
		Short: "Store an API token in the system keychain",
		Long: `Stores a token in the system keychain under the name the bot falls
back to when the environment variable is unset: REBRICK_TOKEN or
TELEGRAM_BOT_TOKEN.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := tokenAccount(args[0])
			if err != nil {
				return err
			}
			if err := keychain.Set(account, args[1]); err != nil {
				return fmt.Errorf("store %s: %w", account, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s stored\n", account)
			return nil
		},
	}
}

// tokenAccount validates name against the credentials config reads.
func tokenAccount(name string) (string, error) {
	switch name {
	case "REBRICK_TOKEN", "TELEGRAM_BOT_TOKEN":
		return name, nil
	default:
		return "", fmt.Errorf("unknown token %q, want REBRICK_TOKEN or TELEGRAM_BOT_TOKEN", name)
	}
}
