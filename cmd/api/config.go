package main

import (
	"os"
	"strconv"
)

// envString returns the value of the environment variable key, or fallback when it is unset or empty.
func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt is like envString, but it also falls back when the value is not an integer.
func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
