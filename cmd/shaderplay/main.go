// Package main provides the shaderplay CLI for running shader compilers
// against single sources or whole batch manifests.
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	Execute()
}
