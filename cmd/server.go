package cmd

import (
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  `Start the songs-server HTTP API: accounts, songs, albums, playlists, reviews, favorites, live streamings and subscriptions.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
