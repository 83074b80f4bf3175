// Package hash provides the checksum used for snapshot integrity.
//
// Snapshots use CRC32-Castagnoli (CRC32C): hardware-accelerated on x86
// (SSE4.2) and ARM (CRC extension), with better error detection than
// CRC32-IEEE, and the industry standard for storage formats (iSCSI,
// RocksDB, LevelDB).
package hash

import (
	"hash"
	"hash/crc32"
)

// crc32cTable is pre-computed for the CRC32-Castagnoli polynomial.
// Computing this once avoids repeated MakeTable calls.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32 for streaming use.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}
