// Package compress provides whole-file codecs for compressed sensor logs.
//
// Sensor loggers often rotate and compress their output. The line store picks
// a codec from the file extension and applies it to the complete file payload
// before splitting it into lines, and again before writing:
//
//	.zst  format.CompressionZstd  Zstandard frame
//	.sz   format.CompressionS2    S2 stream
//	.lz4  format.CompressionLZ4   LZ4 frame
//	other format.CompressionNone  plain text
//
// # Interfaces
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress([]byte("t,x\n1.0,a\n"))
//
// or, keyed by path:
//
//	raw, err := compress.ForPath("acc.csv.lz4").Decompress(fileBytes)
//
// All built-in codecs are stateless values and safe for concurrent use; the
// zstd codec pools its encoders and decoders internally.
package compress
