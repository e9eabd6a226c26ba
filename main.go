package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/cpreston123/core-swipe-service-Care2Share/cmd/app"
)

// @title          Care2Share Ledger API
// @version        1.0
// @description    Meal swipe and dining points donations between students.
// @BasePath       /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
