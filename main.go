package main

import (
	"github.com/example/vocabagent/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local configuration; missing file is fine
	_ = godotenv.Load()

	cli.Execute()
}
