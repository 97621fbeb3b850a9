package skymap

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// Magic opens every skymap file ("HPXM").
	Magic = "HPXM"
	// Version is the format version written by Encode.
	Version = 1
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 32
)

// Compression selects how the body is stored.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 stores the body as one LZ4 block (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd stores the body as one zstd frame (better ratio).
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// Header is the fixed-size prefix of a skymap file.
type Header struct {
	Version     uint16
	Kind        Kind
	Compression Compression
	Count       uint64 // number of values
	StoredSize  uint64 // body bytes following the header
	Checksum    uint32 // CRC32C of the stored body
}

// RawSize returns the uncompressed body size in bytes.
func (h *Header) RawSize() uint64 { return h.Count * uint64(h.Kind.Size()) }

// Encode returns the on-disk image of h.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = uint8(h.Kind)
	buf[7] = uint8(h.Compression)
	binary.LittleEndian.PutUint64(buf[8:], h.Count)
	binary.LittleEndian.PutUint64(buf[16:], h.StoredSize)
	binary.LittleEndian.PutUint32(buf[24:], h.Checksum)
	// Reserved [28:32]
	return buf
}

// DecodeHeader parses and validates a header image.
func DecodeHeader(buf []byte) (Header, error) {
	var h Header
	if len(buf) < HeaderSize {
		return h, ErrTruncated
	}
	if string(buf[0:4]) != Magic {
		return h, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	if h.Version == 0 || h.Version > Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.Kind = Kind(buf[6])
	if !h.Kind.Valid() {
		return h, fmt.Errorf("%w: tag %d", ErrUnknownKind, buf[6])
	}
	h.Compression = Compression(buf[7])
	if h.Compression > CompressionZstd {
		return h, fmt.Errorf("%w: tag %d", ErrUnknownCompression, buf[7])
	}
	h.Count = binary.LittleEndian.Uint64(buf[8:])
	h.StoredSize = binary.LittleEndian.Uint64(buf[16:])
	h.Checksum = binary.LittleEndian.Uint32(buf[24:])
	return h, nil
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// compress returns the stored body and the compression actually used.
// A body that does not shrink is stored uncompressed.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, 0, err
		}
		out = dst[:n] // n == 0: incompressible
	case CompressionZstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, 0, fmt.Errorf("skymap: zstd encoder: %w", err)
		}
		out = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	if len(out) == 0 || len(out) >= len(raw) {
		return raw, CompressionNone, nil
	}
	return out, c, nil
}

// decompress expands a stored body to exactly rawSize bytes.
func decompress(stored []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("%w: body is %d bytes, want %d", ErrCorrupt, len(stored), rawSize)
		}
		return stored, nil
	case CompressionLZ4:
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorrupt, n, rawSize)
		}
		return raw, nil
	case CompressionZstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("skymap: zstd decoder: %w", err)
		}
		defer zstdDecoderPool.Put(dec)
		raw, err := dec.DecodeAll(stored, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(raw) != rawSize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorrupt, len(raw), rawSize)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
}
