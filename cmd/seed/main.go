package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	"github.com/greencycle/greencycle/backend/pkg/config"
)

// catalogEntry is a redeemable reward backed by a sponsor account. One
// rewards row per user, so each catalog entry gets its own sponsor.
type catalogEntry struct {
	sponsorEmail   string
	sponsorName    string
	name           string
	cost           float64
	description    string
	collectionInfo string
}

var catalog = []catalogEntry{
	{
		sponsorEmail:   "store+bottle@greencycle.local",
		sponsorName:    "GreenCycle Store",
		name:           "Reusable Water Bottle",
		cost:           50,
		description:    "Stainless steel bottle, 750ml",
		collectionInfo: "Collect at any partner store with your redemption code",
	},
	{
		sponsorEmail:   "store+tote@greencycle.local",
		sponsorName:    "GreenCycle Store",
		name:           "Canvas Tote Bag",
		cost:           30,
		description:    "Organic cotton tote",
		collectionInfo: "Collect at any partner store with your redemption code",
	},
	{
		sponsorEmail:   "store+compost@greencycle.local",
		sponsorName:    "GreenCycle Store",
		name:           "Home Compost Kit",
		cost:           120,
		description:    "Countertop compost bin with starter mix",
		collectionInfo: "Shipped to your address within two weeks",
	},
	{
		sponsorEmail:   "store+voucher@greencycle.local",
		sponsorName:    "GreenCycle Store",
		name:           "Local Nursery Voucher",
		cost:           80,
		description:    "Voucher for plants and seedlings",
		collectionInfo: "Emailed within 24 hours of redemption",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	db := goqu.New("postgres", pgClient.DB())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, entry := range catalog {
		if err := seedEntry(ctx, pgClient.DB(), db, entry); err != nil {
			log.Fatalf("Failed to seed %q: %v", entry.name, err)
		}
		log.Printf("Seeded reward %q (%.0f points)", entry.name, entry.cost)
	}

	log.Println("Seeding complete.")
}

func seedEntry(ctx context.Context, conn *sql.DB, db *goqu.Database, entry catalogEntry) error {
	query, args, err := db.Insert("users").Rows(goqu.Record{
		"email":      entry.sponsorEmail,
		"name":       entry.sponsorName,
		"created_at": time.Now(),
	}).OnConflict(goqu.DoUpdate("email", goqu.Record{
		"name": entry.sponsorName,
	})).Returning("id").ToSQL()
	if err != nil {
		return err
	}

	var sponsorID int64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&sponsorID); err != nil {
		return err
	}

	now := time.Now()
	query, args, err = db.Insert("rewards").Rows(goqu.Record{
		"user_id":         sponsorID,
		"points":          entry.cost,
		"level":           1,
		"is_available":    true,
		"name":            entry.name,
		"description":     entry.description,
		"collection_info": entry.collectionInfo,
		"created_at":      now,
		"updated_at":      now,
	}).OnConflict(goqu.DoUpdate("user_id", goqu.Record{
		"points":          entry.cost,
		"name":            entry.name,
		"description":     entry.description,
		"collection_info": entry.collectionInfo,
		"updated_at":      now,
	})).ToSQL()
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, query, args...)
	return err
}
