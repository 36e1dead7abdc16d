package cmd

import (
	"context"
	"log"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/config"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/db"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/repository"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Revert expired subscriptions to the free tier and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := db.Connect(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		users := repository.NewUserRepository(db.DB)
		n, err := users.SweepExpired(context.Background(), time.Now())
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		log.Printf("Reverted %d expired subscriptions.", n)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
