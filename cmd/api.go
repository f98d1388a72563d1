package cmd

import (
	"text_trans_api/service/api"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "api",
	Short: "Text translate API service.",
	Long:  `Text translate API service.`,
	Run: func(cmd *cobra.Command, args []string) {
		api.Run()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
