package main

import (
	"os"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
