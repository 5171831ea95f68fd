package main

import (
	"github.com/joho/godotenv"

	"ollamabridge/cmd"
)

func main() {
	// Load optional .env before viper reads the environment.
	_ = godotenv.Load()

	cmd.Execute()
}
