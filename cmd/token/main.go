// Command token issues bearer tokens for back-office operators.
//
//	token -operator accounts@shop -scopes ledger,payouts
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/stationery/backoffice/internal/infrastructure/auth"
	"github.com/stationery/backoffice/internal/infrastructure/config"
)

func main() {
	var (
		operator string
		scopes   string
		ttl      time.Duration
	)
	flag.StringVar(&operator, "operator", "", "Operator name recorded in the token (required)")
	flag.StringVar(&scopes, "scopes", auth.ScopeLedger, "Comma-separated scopes: ledger, payouts")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default auth.token_ttl)")
	flag.Parse()

	if operator == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid auth configuration: %v\n", err)
		os.Exit(1)
	}

	token, expires, err := tokens.Issue(operator, parseScopes(scopes)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "expires %s\n", expires.Format(time.RFC3339))
	fmt.Println(token)
}

func parseScopes(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
