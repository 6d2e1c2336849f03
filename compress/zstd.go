package compress

// ZstdCompressor reads and writes Zstandard frames (.zst files).
//
// Output is a single standard frame, so files written by tsfuse can be
// inspected with the zstd command-line tool and vice versa.
//
// The default build uses github.com/klauspost/compress/zstd. Building with
// cgo and the gozstd tag switches to github.com/valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
