package main

import (
	"log"

	"github.com/kunalaswar/HireFlow/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
