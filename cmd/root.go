package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebrickable-bot",
		Short: "Telegram bot answering LEGO set numbers with Rebrickable catalog data",
		Long: `rebrickable-bot listens for LEGO set numbers in Telegram chats and
replies with the set's name, year, part count and product image from the
Rebrickable catalog.

Private chats trigger on a bare number ("42177"); groups trigger on an
explicit mention ("@rebrickable_bot 42177").`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newTokenCmd())

	return cmd
}
