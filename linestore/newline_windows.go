//go:build windows

package linestore

// Newline is the line terminator written by default on this platform.
const Newline = "\r\n"

// syncDir is a no-op on Windows, where directories cannot be fsynced.
func syncDir(string) error { return nil }
