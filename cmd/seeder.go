package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	directoryPostgres "github.com/frahmantamala/earned-wage-access/internal/bankdirectory/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the bank directory with the demo accounts",
	Long:  `Load the demo bank accounts into the SQL bank directory. Run migrate first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		if cfg.Database.Driver == "sqlite" && cfg.Database.Source == "file::memory:?cache=shared" {
			fmt.Println("database is in memory; the server seeds it on start")
			return
		}

		dbConn, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer dbConn.Close()

		repo := directoryPostgres.NewDirectoryRepository(gormDB)

		if clearData {
			if err := repo.Clear(ctx); err != nil {
				log.Fatalf("failed to clear bank directory: %v", err)
			}
			fmt.Println("Cleared bank directory accounts")
		}

		accounts := bankdirectory.FixtureAccounts()
		if err := repo.Upsert(ctx, accounts); err != nil {
			log.Fatalf("failed to seed bank directory: %v", err)
		}

		for _, a := range accounts {
			fmt.Printf("Seeded directory account: %s\n", bankdirectory.Key(a.BankCode, a.AccountNo))
		}
		fmt.Println("Bank directory seeded successfully")
	},
}
