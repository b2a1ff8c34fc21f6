// Command hashpw prints a bcrypt hash for use in AUTH_USERS.
//
//	hashpw <password>
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/iliyamo/train-seat-booking/internal/config"
	"github.com/iliyamo/train-seat-booking/internal/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	_ = godotenv.Load()
	cfg := config.LoadDefaults()
	hash, err := utils.HashPassword(os.Args[1], cfg.BcryptCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
