package main

import (
	"log"

	"github.com/MrSnakeDoc/waypoint/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("waypoint failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("waypoint failed: %v", err)
	}
}
