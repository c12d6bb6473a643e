package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/api/handlers"
	"github.com/shopsync/shopsync-api/config"
)

func main() {
	// local development convenience; deployed pods get real env vars
	envErr := godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	if envErr != nil {
		zap.S().Debug("no .env file found, using process environment")
	}

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("shopsync-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
