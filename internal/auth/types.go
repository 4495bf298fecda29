package auth

import "github.com/golang-jwt/jwt/v5"

// Claims carried by service tokens that authorize scrape operations
type Claims struct {
	Subject string `json:"sub_name"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

// scope required to trigger and observe scrape runs
const ScopeScrape = "scrape"
