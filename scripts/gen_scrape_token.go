package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kalustehaku/server/internal/auth"
)

// generates a service token for the scrape endpoints, for schedulers and
// manual testing
func main() {
	subject := flag.String("subject", "operator", "token subject name")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	token, err := auth.GenerateServiceToken(*subject, auth.ScopeScrape, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
