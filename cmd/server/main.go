package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/app"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err = app.Run(cfg); err != nil {
		log.Fatalf("failed to run app: %v", err)
	}
}
