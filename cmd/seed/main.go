package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	userID := seedDemoUser(db)
	seedDemoVehicles(db, userID)
}

func seedDemoUser(db *sql.DB) int64 {
	email := "demo@keepup.local"
	password := "password"

	if envEmail := os.Getenv("DB_DEMO_EMAIL"); envEmail != "" {
		email = envEmail
	}

	if envPass := os.Getenv("DB_DEMO_PASSWORD"); envPass != "" {
		password = envPass
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	query := `
		INSERT INTO users (name, email, password, role_id)
		VALUES ($1, $2, $3, (SELECT id FROM roles WHERE name = 'CLIENT'))
		ON CONFLICT (email) DO UPDATE SET password = excluded.password
		RETURNING id
	`

	var userID int64
	if err := db.QueryRow(query, "Demo", email, string(hashed)).Scan(&userID); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	fmt.Printf("User seeded\n   User: %s\n   Pass: %s\n", email, password)
	return userID
}

func seedDemoVehicles(db *sql.DB, userID int64) {
	query := `
		INSERT INTO vehicles (license_plate, make, model, year, color, type, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT vehicles_user_id_license_plate_key DO NOTHING
	`

	vehicles := []struct {
		make, model, color, vtype string
		year                      int
	}{
		{"Toyota", "Corolla", "White", "SEDAN", 2020},
		{"Honda", "CR-V", "Black", "SUV", 2022},
		{"Ford", "F-150", "Blue", "TRUCK", 2019},
	}

	for _, v := range vehicles {
		// random suffix keeps reseeding against a half-populated table from colliding
		plate := strings.ToUpper(fmt.Sprintf("DEMO-%s", uuid.NewString()[:4]))
		if _, err := db.Exec(query, plate, v.make, v.model, v.year, v.color, v.vtype, userID); err != nil {
			log.Fatalf("Failed to seed vehicle: %v", err)
		}
	}

	fmt.Println("Vehicles seeded")
}
