package cmd

import (
	"text_trans_api/service/worker"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Document translation queue worker.",
	Long:  `Document translation queue worker.`,
	Run: func(cmd *cobra.Command, args []string) {
		worker.Run()
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)
}
