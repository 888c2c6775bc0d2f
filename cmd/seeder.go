package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tranyenminhbd/docuflow/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the starter dataset",
	Long:  `Install the starter dataset: the super admin account, default roles, departments, categories, the app configuration and a welcome document.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := openDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"documents", "categories", "departments",
				"roles", "users", "activity_log", "app_config",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		if err := seed.Apply(db, cfg.Security.BCryptCost); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}

		fmt.Println("Seeded starter dataset")
		fmt.Printf("Super admin login: %s (change the password after first login)\n", seed.AdminEmail)
	},
}
