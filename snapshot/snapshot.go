// Package snapshot persists a vector's live contents as a self-describing
// binary blob.
//
// The format records its codec name, compression, capacity, and a CRC32C of
// the stored payload, so a snapshot can be validated and decoded without
// out-of-band knowledge:
//
//	magic "FVEC" | version | compression | codec name
//	capacity | element count | uncompressed size | stored size
//	payload (codec-marshaled live slice, optionally compressed)
//	CRC32C of the stored payload bytes
//
// Read never returns a partially-filled vector: any header, checksum, or
// decode failure surfaces as an error and nothing else.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/fixedvec"
	"github.com/hupe1980/fixedvec/codec"
	"github.com/hupe1980/fixedvec/internal/hash"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// None stores the payload uncompressed.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, modest ratio).
	LZ4 Compression = 1
	// Zstd uses Zstandard compression (better ratio, still fast).
	Zstd Compression = 2
)

var (
	// ErrBadMagic is returned when the input does not start with the
	// snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for format versions this package
	// cannot decode.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")
	// ErrUnknownCodec is returned when the recorded codec name has no
	// built-in implementation.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrUnknownCompression is returned for unrecognized compression bytes.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	// ErrChecksum is returned when the stored payload fails CRC validation.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrCorrupt is returned when header fields are internally inconsistent.
	ErrCorrupt = errors.New("snapshot: corrupt header")
	// ErrSnapshotTooLarge is returned when a header announces a payload
	// beyond the decode limit.
	ErrSnapshotTooLarge = errors.New("snapshot: payload exceeds decode limit")
)

var magic = [4]byte{'F', 'V', 'E', 'C'}

const (
	formatVersion = 1

	// maxPayloadSize bounds allocations driven by untrusted headers.
	maxPayloadSize = 1 << 31
)

// Zstd's stateless EncodeAll/DecodeAll are safe for concurrent use, so one
// encoder/decoder pair serves the whole package.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
}

type options struct {
	codec       codec.Codec
	compression Compression
	capacity    int // 0 means "use the capacity recorded in the snapshot"
}

// Option configures Write and Read behavior.
type Option func(*options)

// WithCodec sets the payload codec for Write. If nil is passed,
// codec.Default is used. Read ignores this option: the codec name recorded
// in the snapshot header wins.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the payload compression for Write. Incompressible
// payloads are stored uncompressed regardless, with the header downgraded
// to None.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCapacity overrides the restored vector's capacity on Read. It must
// be at least the snapshot's element count; Read fails with an error
// wrapping fixedvec.ErrCapacityExceeded otherwise.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

func applyOptions(opts []Option) options {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write encodes v's live contents to w.
func Write[T any](w io.Writer, v *fixedvec.Vector[T], opts ...Option) error {
	o := applyOptions(opts)

	payload, err := o.codec.Marshal(v.Slice())
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}

	stored, compression, err := compress(payload, o.compression)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(compression))

	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("snapshot: codec name %q too long", name)
	}
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)

	var u64 [8]byte
	for _, field := range []uint64{
		uint64(v.Cap()),
		uint64(v.Len()),
		uint64(len(payload)),
		uint64(len(stored)),
	} {
		binary.LittleEndian.PutUint64(u64[:], field)
		buf.Write(u64[:])
	}

	buf.Write(stored)

	var crc [4]byte
	binary.LittleEndian.PutUint32(crc[:], hash.CRC32C(stored))
	buf.Write(crc[:])

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r into a new vector. The vector's capacity
// is the one recorded at Write time unless WithCapacity overrides it.
func Read[T any](r io.Reader, opts ...Option) (*fixedvec.Vector[T], error) {
	o := applyOptions(opts)

	var fixed [7]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if !bytes.Equal(fixed[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if fixed[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, fixed[4])
	}
	compression := Compression(fixed[5])

	name := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var u64s [32]byte
	if _, err := io.ReadFull(r, u64s[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	capacity := binary.LittleEndian.Uint64(u64s[0:])
	count := binary.LittleEndian.Uint64(u64s[8:])
	uncompressedLen := binary.LittleEndian.Uint64(u64s[16:])
	storedLen := binary.LittleEndian.Uint64(u64s[24:])

	if count > capacity || (compression == None && storedLen != uncompressedLen) {
		return nil, ErrCorrupt
	}
	if storedLen > maxPayloadSize || uncompressedLen > maxPayloadSize || capacity > maxPayloadSize {
		return nil, ErrSnapshotTooLarge
	}

	stored := make([]byte, storedLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("snapshot: read payload: %w", err)
	}

	var crc [4]byte
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read checksum: %w", err)
	}
	if binary.LittleEndian.Uint32(crc[:]) != hash.CRC32C(stored) {
		return nil, ErrChecksum
	}

	payload, err := decompress(stored, compression, int(uncompressedLen))
	if err != nil {
		return nil, err
	}

	var elems []T
	if err := c.Unmarshal(payload, &elems); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	if uint64(len(elems)) != count {
		return nil, fmt.Errorf("%w: payload holds %d elements, header says %d", ErrCorrupt, len(elems), count)
	}

	vecCap := int(capacity)
	if o.capacity > 0 {
		if o.capacity < len(elems) {
			return nil, fmt.Errorf("%w: snapshot holds %d elements, requested capacity %d",
				fixedvec.ErrCapacityExceeded, len(elems), o.capacity)
		}
		vecCap = o.capacity
	}

	v := fixedvec.New[T](vecCap)
	if err := v.TryExtendFromSlice(elems); err != nil {
		return nil, err
	}
	return v, nil
}

func compress(payload []byte, compression Compression) ([]byte, Compression, error) {
	if len(payload) == 0 {
		return payload, None, nil
	}
	switch compression {
	case None:
		return payload, None, nil
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("snapshot: lz4: %w", err)
		}
		if n == 0 || n >= len(payload) {
			// Incompressible; store as-is.
			return payload, None, nil
		}
		return buf[:n], LZ4, nil
	case Zstd:
		stored := zstdEncoder.EncodeAll(payload, nil)
		if len(stored) >= len(payload) {
			return payload, None, nil
		}
		return stored, Zstd, nil
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

func decompress(stored []byte, compression Compression, uncompressedLen int) ([]byte, error) {
	switch compression {
	case None:
		return stored, nil
	case LZ4:
		payload := make([]byte, uncompressedLen)
		n, err := lz4.UncompressBlock(stored, payload)
		if err != nil {
			return nil, fmt.Errorf("snapshot: lz4: %w", err)
		}
		if n != uncompressedLen {
			return nil, fmt.Errorf("%w: lz4 expanded to %d bytes, header says %d", ErrCorrupt, n, uncompressedLen)
		}
		return payload, nil
	case Zstd:
		payload, err := zstdDecoder.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd: %w", err)
		}
		if len(payload) != uncompressedLen {
			return nil, fmt.Errorf("%w: zstd expanded to %d bytes, header says %d", ErrCorrupt, len(payload), uncompressedLen)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}
