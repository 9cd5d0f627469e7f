// Package frame implements LG-1.0, the block-framing layer of a Shoot-By-Wire
// telemetry capture: slicing a byte-addressable source into well-formed block
// frames without attempting to decrypt or interpret their payloads.
//
// A capture file has no file-level header or magic number: it is simply a
// concatenation of blocks, each a fixed 12-byte Header followed by a sealed
// payload (nonce || ciphertext || 16-byte GCM tag). Reader walks that sequence
// lazily, pull-based, so the whole file need not be resident in memory.
package frame
