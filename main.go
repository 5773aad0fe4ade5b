// Main entry point for the application
package main

import (
	"log"

	"artframe/internal/ui"
)

func main() {
	// Set the logger prefix
	log.SetPrefix("ArtFrame ")

	ui.CreateApplication()
}
