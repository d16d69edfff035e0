package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/rentfolio/internal/config"
	"github.com/localnerve/rentfolio/internal/database"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Seed the rentfolio database with demo data using the environment variables from the .env file.

Usage:

seed [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  seed -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seed complete")
}

// seed creates a small demo portfolio
func seed(db *gorm.DB) error {
	now := time.Now().UTC()

	property, err := services.CreateProperty(db, services.PropertyInput{
		Address:      "12 Harbor Lane",
		PropertyType: "Private",
		Units:        4,
	})
	if err != nil {
		return err
	}

	tenant, err := services.CreateTenant(db, services.TenantInput{
		Name:        "Avery Brooks",
		LeaseStart:  now,
		LeaseEnd:    now.AddDate(1, 0, 0),
		MonthlyRent: decimal.NewFromInt(1450),
	})
	if err != nil {
		return err
	}

	room, err := services.CreateRoom(db, "A1")
	if err != nil {
		return err
	}
	if err := services.RoomAttachProperty(db, room.RoomID, property.PropertyID); err != nil {
		return err
	}

	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		return err
	}

	manager, err := services.CreateManager(db, "Harborfront Rentals")
	if err != nil {
		return err
	}
	if err := services.AddProperty(db, manager.ManagerID, &property.PropertyID); err != nil {
		return err
	}

	log.Printf("Seeded property %d, tenant %d, room %d, manager %d",
		property.PropertyID, tenant.TenantID, room.RoomID, manager.ManagerID)
	return nil
}
