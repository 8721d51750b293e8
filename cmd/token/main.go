// Command token mints a development JWT for a user id.
//
//	AUTH_SECRET=... go run ./cmd/token -user 42 -ttl 1h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikitapn/npchat/auth"
	"github.com/nikitapn/npchat/domain"
)

func main() {
	userID := flag.Uint("user", 0, "user id to put in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" || *userID == 0 {
		fmt.Fprintln(os.Stderr, "usage: AUTH_SECRET=... token -user <id> [-ttl 1h]")
		os.Exit(2)
	}

	token, err := auth.GenerateToken([]byte(secret), domain.UserID(*userID), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
