package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "songs-server",
	Short: "songs-server is the backend of the music streaming platform.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting songs-server...")
		// server.Start handles its own config loading and startup logging.
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
