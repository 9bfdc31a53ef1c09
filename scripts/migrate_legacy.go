// Migrates the legacy travello data dump into the beyondborders store.
// The dump is a JSON export of the old destinations and bookings; rows are
// written through the same models the workflows use, so every store-level
// constraint applies to migrated data too.
//
// Usage: go run ./scripts legacy_dump.json
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"beyondborders-server/models"
	"beyondborders-server/storage"

	"github.com/google/uuid"
)

type legacyDestination struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Img   string `json:"img"`
	Desc  string `json:"desc"`
	Price int    `json:"price"`
	Offer bool   `json:"offer"`
}

type legacyBooking struct {
	UserID            uint   `json:"user_id"`
	DestinationID     uint   `json:"destination_id"`
	TravelDate        string `json:"travel_date"` // YYYY-MM-DD
	NumberOfTravelers int    `json:"number_of_travelers"`
	Status            string `json:"status"`
}

type legacyDump struct {
	Destinations []legacyDestination `json:"destinations"`
	Bookings     []legacyBooking     `json:"bookings"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate_legacy <dump.json>")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Error reading dump: %v", err)
	}

	var dump legacyDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		log.Fatalf("Error parsing dump: %v", err)
	}

	db := storage.InitializeDB()

	fmt.Println("Starting data migration from travello to beyondborders...")

	// Old ids do not survive; bookings are remapped through this table.
	destinationMapping := make(map[uint]uint, len(dump.Destinations))

	for _, old := range dump.Destinations {
		dest := models.Destination{
			Name:        old.Name,
			Image:       old.Img,
			Description: old.Desc,
			Price:       old.Price,
			Offer:       old.Offer,
		}
		if err := db.Create(&dest).Error; err != nil {
			log.Fatalf("Error migrating destination %q: %v", old.Name, err)
		}
		destinationMapping[old.ID] = dest.ID
		fmt.Printf("Migrated destination: %s\n", old.Name)
	}

	migratedBookings := 0
	for _, old := range dump.Bookings {
		newDestID, ok := destinationMapping[old.DestinationID]
		if !ok {
			log.Printf("Skipping booking for unknown destination %d", old.DestinationID)
			continue
		}

		travelDate, err := time.Parse("2006-01-02", old.TravelDate)
		if err != nil {
			log.Printf("Skipping booking with invalid travel date %q", old.TravelDate)
			continue
		}

		status := old.Status
		if status == "" {
			status = models.BookingPending
		}

		booking := models.Booking{
			UserID:            old.UserID,
			DestinationID:     newDestID,
			Reference:         uuid.NewString(),
			TravelDate:        travelDate,
			NumberOfTravelers: old.NumberOfTravelers,
			Status:            status,
		}
		if err := db.Create(&booking).Error; err != nil {
			log.Fatalf("Error migrating booking for destination %d: %v", old.DestinationID, err)
		}
		migratedBookings++
	}

	fmt.Println("Data migration completed successfully!")
	fmt.Printf("Total destinations migrated: %d\n", len(destinationMapping))
	fmt.Printf("Total bookings migrated: %d\n", migratedBookings)
}
