package main

import (
	"fmt"
	"log"
	"time"

	"github.com/madina-zvezda/yatube/src/core/cache"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/router"
)

func main() {
	// Setup environment variables
	config.SetupEnv()

	// Connect to the database
	database.ConnectDB()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Error migrating the database: %v", err)
	}

	// Page cache for the global feed
	ttl := time.Duration(config.Int("CACHE_TTL_SECONDS")) * time.Second
	pages := cache.NewPageCache(ttl)

	// Build the app and set up routes
	app := router.NewApp(pages)

	// Get port from config and start the server
	port := config.Config("APP_PORT")
	log.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}
