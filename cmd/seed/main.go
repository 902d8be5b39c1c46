package main

import (
	"context"
	"log"
	"time"

	"confdex/internal/config"
	"confdex/internal/dataset"
	"confdex/internal/storage"

	"github.com/joho/godotenv"
)

// seed reads the CSV files and replaces the Postgres copy of the dataset, so
// the API can run with CONFDEX_SOURCE=postgres.
func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.SeedTimeoutSecs)*time.Second)
	defer cancel()

	ds, err := dataset.CSVLoader{Dir: cfg.DataDir}.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	repo := storage.NewDatasetRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}
	if err := repo.ReplaceDataset(ctx, ds); err != nil {
		log.Fatal(err)
	}
	log.Printf("confdex seed complete papers=%d authors=%d sessions=%d", len(ds.Papers), len(ds.Authors), len(ds.Sessions))
}
