package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CompressionType selects the codec applied to a whole line file.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain text file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame (.zst).
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream (.sz).
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame (.lz4).
)

var extensions = map[CompressionType]string{
	CompressionZstd: ".zst",
	CompressionS2:   ".sz",
	CompressionLZ4:  ".lz4",
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension, including the dot, that marks files
// of this compression type. CompressionNone has no extension.
func (c CompressionType) Extension() string {
	return extensions[c]
}

// FromPath infers the compression type from the extension of path.
// Unknown extensions are treated as plain text.
func FromPath(path string) CompressionType {
	ext := strings.ToLower(filepath.Ext(path))
	for c, e := range extensions {
		if e == ext {
			return c
		}
	}

	return CompressionNone
}

// TrimExtension removes a compression extension from path, if present.
//
//	TrimExtension("acc.csv.zst") == "acc.csv"
//	TrimExtension("acc.csv") == "acc.csv"
func TrimExtension(path string) string {
	c := FromPath(path)
	if c == CompressionNone {
		return path
	}

	return path[:len(path)-len(filepath.Ext(path))]
}

// ParseCompression parses a compression name as used in configuration files
// and command-line flags. Matching is case-insensitive; the empty string means
// CompressionNone.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2", "sz":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
