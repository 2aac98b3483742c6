package util

import (
	"os"
)

// EnsureDirectoryExists creates directory if it doesn't exist
func EnsureDirectoryExists(path string) bool {
	if path == "" || path == "." {
		return true
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// try to create it
		err = os.MkdirAll(path, 0755)
		if err != nil {
			return false
		}
	}
	return true
}
