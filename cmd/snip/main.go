package main

import (
	"log"

	"github.com/MrSnakeDoc/snip/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ snip failed to start: %v", err)
	}
}
