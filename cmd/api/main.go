package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"confdex/internal/api"
	"confdex/internal/catalog"
	"confdex/internal/config"
	"confdex/internal/dataset"
	"confdex/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	var loader dataset.Loader
	switch cfg.Source {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db, err := storage.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		loader = storage.NewDatasetRepo(db)
	default:
		loader = dataset.CSVLoader{Dir: cfg.DataDir}
	}

	h := api.NewServer(cfg, catalog.NewStore(loader))
	log.Printf("confdex api listening on %s source=%q data=%q", cfg.APIAddr, cfg.Source, cfg.DataDir)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
