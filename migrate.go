package main

import (
	"database/sql"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"mollie-bridge/internal/utils"
)

// runMigration applies the SQL migration file against the configured
// database. Invoked as: mollie-bridge migrate [-env-file .env] [-migration migrate.sql] [-seed]
func runMigration() {
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	envFileFlag := flags.String("env-file", "", "Path to .env file")
	migrationFlag := flags.String("migration", "migrate.sql", "Path to migration file")
	seedFlag := flags.Bool("seed", false, "Insert a demo transaction for local testing")
	flags.Parse(os.Args[2:])

	if *envFileFlag != "" {
		if err := godotenv.Load(*envFileFlag); err != nil {
			stdlog.Fatalf("Failed to load env file %s: %v", *envFileFlag, err)
		}
	} else if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found, using environment variables")
	}

	host := envOrDefault("DB_HOST", "localhost")
	port := envOrDefault("DB_PORT", "3306")
	username := envOrDefault("DB_USER", "root")
	password := os.Getenv("DB_PASSWORD")
	database := envOrDefault("DB_NAME", "mollie_bridge")

	fmt.Printf("Connecting to MySQL at %s:%s as %s\n", host, port, username)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		username, password, host, port, database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		stdlog.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		stdlog.Fatalf("Failed to ping database: %v", err)
	}

	script, err := os.ReadFile(*migrationFlag)
	if err != nil {
		stdlog.Fatalf("Failed to read migration file %s: %v", *migrationFlag, err)
	}

	if _, err := db.Exec(string(script)); err != nil {
		stdlog.Fatalf("Migration failed: %v", err)
	}

	if *seedFlag {
		accessID := utils.GenerateAccessID()
		_, err := db.Exec(
			"INSERT INTO payment_transactions (access_identifier, entity_identifier, payment_method) VALUES (?, ?, ?)",
			accessID, "demo-order-1", "mollie_payment_1_creditcard",
		)
		if err != nil {
			stdlog.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Seeded demo transaction, callback URL path: /return/%s\n", accessID)
	}

	fmt.Println("Migration completed successfully")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
