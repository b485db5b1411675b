package main

import (
	"os"

	"github.com/spf13/cobra"

	"CryptoBuddy/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:   "bot",
		Short: "CryptoBuddy - a rule-based crypto advice chatbot",
		Long: `CryptoBuddy answers questions about a small catalog of cryptocurrencies:
what is trending, what is sustainable, and what a balanced pick looks like.

Run without arguments to start the interactive chat.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")

	root.AddCommand(
		newAskCmd(a),
		newDigestCmd(a),
		newTelegramCmd(a),
		newStatsCmd(a),
	)
	return root
}
