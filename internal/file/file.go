package file

import "os"

// Exists returns a bool indicating if the specified file exists or not. It
// returns false if an error is encountered while attempting to stat the file.
func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		return false
	}
	return true
}
