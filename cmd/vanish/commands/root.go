package commands

import (
	"github.com/spf13/cobra"
)

var serverURL string

func Execute() error {
	root := &cobra.Command{
		Use:   "vanish",
		Short: "Ephemeral zero-knowledge message relay",
		Long: "vanish relays opaque encrypted envelopes between anonymous sessions\n" +
			"and rooms. Nothing is inspected and nothing survives its TTL.",
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "base URL of a running relay")

	root.AddCommand(serveCmd(), createRoomCmd(), healthCmd())
	return root.Execute()
}
