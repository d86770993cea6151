package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/greencycle/greencycle/backend/internal/adapters/database"
	"github.com/greencycle/greencycle/backend/internal/adapters/search"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/typesense"
	"github.com/greencycle/greencycle/backend/pkg/config"
)

// Backfills the Typesense task index from the reports table. Runs once by
// default; with -interval it reindexes on a schedule.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	reportRepo := database.NewReportAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting tasks collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.TasksCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)

	tasks, err := reportRepo.ListTasks(ctx, entities.TaskFilter{Limit: 10000})
	if err != nil {
		return err
	}

	log.Printf("Indexing %d tasks...", len(tasks))

	indexed := 0
	for _, task := range tasks {
		if task == nil {
			continue
		}
		if err := searchRepo.IndexTask(ctx, task); err != nil {
			log.Printf("Failed to index task %d: %v", task.ID, err)
			continue
		}
		indexed++
	}

	log.Printf("Indexing complete (%d/%d).", indexed, len(tasks))
	return nil
}
