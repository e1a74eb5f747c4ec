package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
	"github.com/arleypeter/calcom-mcp/internal/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Cal.com API key is configured",
		Long: `Check whether the CALCOM_API_KEY environment variable is set.
Performs no network call; this only reports the local configuration state.`,
		Run: func(cmd *cobra.Command, args []string) {
			client := calcom.NewClient(config.FromEnv().ClientConfig())
			fmt.Println(client.Status())
		},
	}
}
