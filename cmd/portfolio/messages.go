package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/internal/application"
	"portfolio/internal/infrastructure/relay"
	"portfolio/pkg/discord"
)

var messagesLimit int

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Inspect stored contact messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest contact messages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		store, closeStore, err := openStore(cmd.Context(), cfg.ContactStore, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		svc := application.NewContactService(store, relay.NewClient(cfg.RelayTimeout, logger), logger)
		msgs, err := svc.Recent(cmd.Context(), messagesLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SUBMITTED\tSTATUS\tLOCALE\tORIGIN\tNAME\tEMAIL")
		for _, m := range msgs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				discord.FormatSubmittedAt(m.SubmittedAt), m.Status, m.Locale, m.Origin, m.Name, m.Email)
		}
		return w.Flush()
	},
}

func init() {
	messagesListCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "maximum number of messages")
	messagesCmd.AddCommand(messagesListCmd)
}
