//go:build !windows

package linestore

import "os"

// Newline is the line terminator written by default on this platform.
const Newline = "\n"

// syncDir flushes directory metadata so a completed rename survives a crash.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
