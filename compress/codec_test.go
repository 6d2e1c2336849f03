package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/format"
	"github.com/stretchr/testify/require"
)

func sensorPayload(rows int) []byte {
	var sb strings.Builder
	sb.WriteString("Time,x,y,z\n")
	for i := 0; i < rows; i++ {
		sb.WriteString("10:00:0")
		sb.WriteByte(byte('0' + i%10))
		sb.WriteString(":1,0.01,-0.02,9.81\n")
	}

	return []byte(sb.String())
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := sensorPayload(500)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(payload)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(packed), len(payload))
			}

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, unpacked))
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestCodecs_CorruptedInput(t *testing.T) {
	garbage := []byte("definitely not compressed")

	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		_, err := codec.Decompress(garbage)
		require.Error(t, err)
	}
}

func TestCreateCodec(t *testing.T) {
	codec, err := CreateCodec(format.CompressionLZ4, "gyr.csv.lz4")
	require.NoError(t, err)
	require.IsType(t, LZ4Compressor{}, codec)

	_, err = CreateCodec(format.CompressionType(0x7f), "gyr.csv")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
	require.Contains(t, err.Error(), "gyr.csv")
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestForPath(t *testing.T) {
	require.IsType(t, ZstdCompressor{}, ForPath("acc.csv.zst"))
	require.IsType(t, S2Compressor{}, ForPath("acc.csv.sz"))
	require.IsType(t, LZ4Compressor{}, ForPath("acc.csv.lz4"))
	require.IsType(t, NoOpCompressor{}, ForPath("acc.csv"))
}
