package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"timeclock-backend/config"
	"timeclock-backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	config.ConnectDB()

	fmt.Println("Seeding reference data...")
	database.SeedAll(config.DB)
	fmt.Println("Seeding complete.")
}
