package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"matchly/internal/events"
	"matchly/internal/listings"
	"matchly/internal/shared/config"
	"matchly/internal/shared/database"
	"matchly/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Matchly Database Seeder...")

	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"settled_transactions",
		"offer_views",
		"buyer_offers",
		"listings",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, events, and a few open listings
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	buyerIDs, sellerIDs, err := s.SeedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Printf("  Seeded %d buyers, %d sellers\n", len(buyerIDs), len(sellerIDs))

	eventIDs, err := s.SeedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	fmt.Printf("  Seeded %d events\n", len(eventIDs))

	count, err := s.SeedListings(ctx, sellerIDs, eventIDs)
	if err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}
	fmt.Printf("  Seeded %d listings\n", count)

	return nil
}

func (s *Seeder) SeedUsers(ctx context.Context) ([]uuid.UUID, []uuid.UUID, error) {
	buyers := []users.User{
		{ID: uuid.New(), FirstName: "Ava", LastName: "Nguyen", Email: "ava.buyer@matchly.dev", Role: users.RoleBuyer},
		{ID: uuid.New(), FirstName: "Liam", LastName: "Patel", Email: "liam.buyer@matchly.dev", Role: users.RoleBuyer},
		{ID: uuid.New(), FirstName: "Maya", LastName: "Okafor", Email: "maya.buyer@matchly.dev", Role: users.RoleBuyer},
	}
	sellers := []users.User{
		{ID: uuid.New(), FirstName: "Noah", LastName: "Kim", Email: "noah.seller@matchly.dev", Role: users.RoleSeller},
		{ID: uuid.New(), FirstName: "Sofia", LastName: "Reyes", Email: "sofia.seller@matchly.dev", Role: users.RoleSeller},
	}

	var buyerIDs, sellerIDs []uuid.UUID
	for i := range buyers {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&buyers[i]).Error; err != nil {
			return nil, nil, err
		}
		buyerIDs = append(buyerIDs, buyers[i].ID)
	}
	for i := range sellers {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&sellers[i]).Error; err != nil {
			return nil, nil, err
		}
		sellerIDs = append(sellerIDs, sellers[i].ID)
	}
	return buyerIDs, sellerIDs, nil
}

func (s *Seeder) SeedEvents(ctx context.Context) ([]uuid.UUID, error) {
	now := time.Now()
	seedEvents := []events.Event{
		{ID: uuid.New(), Name: "Indie Rock Night", Venue: "The Paramount", StartsAt: now.Add(14 * 24 * time.Hour), Status: events.EventStatusUpcoming},
		{ID: uuid.New(), Name: "Championship Finals", Venue: "City Arena", StartsAt: now.Add(30 * 24 * time.Hour), Status: events.EventStatusUpcoming},
		{ID: uuid.New(), Name: "Jazz Festival", Venue: "Riverside Amphitheater", StartsAt: now.Add(45 * 24 * time.Hour), Status: events.EventStatusUpcoming},
		{ID: uuid.New(), Name: "Last Year's Gala", Venue: "Grand Hall", StartsAt: now.Add(-60 * 24 * time.Hour), Status: events.EventStatusCompleted},
	}

	var ids []uuid.UUID
	for i := range seedEvents {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&seedEvents[i]).Error; err != nil {
			return nil, err
		}
		ids = append(ids, seedEvents[i].ID)
	}
	return ids, nil
}

func (s *Seeder) SeedListings(ctx context.Context, sellerIDs, eventIDs []uuid.UUID) (int, error) {
	if len(sellerIDs) < 2 || len(eventIDs) < 2 {
		return 0, fmt.Errorf("not enough sellers or events to seed listings")
	}

	goLive := time.Now().Add(24 * time.Hour)
	seedListings := []listings.Listing{
		{
			ID: uuid.New(), SellerID: sellerIDs[0], EventID: eventIDs[0],
			Section: "GA", Row: "", Seats: []string{"GA-101", "GA-102"},
			Quantity: 2, AskingPrice: 85.00, DeliveryMethod: listings.DeliveryMobile,
			Status: listings.StatusActive,
		},
		{
			ID: uuid.New(), SellerID: sellerIDs[0], EventID: eventIDs[1],
			Section: "Lower Bowl", Row: "C", Seats: []string{"C-14", "C-15"},
			Quantity: 2, AskingPrice: 240.00, DeliveryMethod: listings.DeliveryTransfer,
			Status: listings.StatusActive,
		},
		{
			ID: uuid.New(), SellerID: sellerIDs[1], EventID: eventIDs[0],
			Section: "Balcony", Row: "A", Seats: []string{"A-3"},
			Quantity: 1, AskingPrice: 60.00, DeliveryMethod: listings.DeliveryPDF,
			Status: listings.StatusActive,
		},
		{
			ID: uuid.New(), SellerID: sellerIDs[1], EventID: eventIDs[2],
			Section: "Lawn", Row: "", Seats: []string{"L-1", "L-2", "L-3", "L-4"},
			Quantity: 4, AskingPrice: 35.00, DeliveryMethod: listings.DeliveryMobile,
			Status: listings.StatusDraft, GoLiveAt: &goLive,
		},
	}

	for i := range seedListings {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&seedListings[i]).Error; err != nil {
			return i, err
		}
	}
	return len(seedListings), nil
}
