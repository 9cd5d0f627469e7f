// Package endian provides byte order utilities for binary encoding and decoding.
//
// It extends the standard encoding/binary package by combining ByteOrder and
// AppendByteOrder into a single EndianEngine interface, so decoders can carry
// one value around instead of threading binary.LittleEndian/BigEndian calls
// by hand.
//
// # Basic usage
//
// The wire formats decoded by this module (LG-1.0 block headers, TL-1.0 TLV
// records) are little-endian only, so production code always uses
// GetLittleEndianEngine:
//
//	import "github.com/shootbywire/sbwdecode/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	blockID := engine.Uint16(header[10:12])
//
// GetBigEndianEngine exists for symmetry; no decoder in this module uses it,
// since the wire format never varies at runtime.
//
// # Thread safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine. LG-1.0 and TL-1.0 are
// little-endian only; this is the engine every production decoder uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. No production decoder
// uses it; only this package's own tests call it.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
