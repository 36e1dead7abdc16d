package cmd

import (
	"log"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/config"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/db"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/server"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := db.Connect(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.AutoMigrate(server.Migrations...); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		log.Println("Schema migrated.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
