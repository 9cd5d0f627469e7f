// Package tlv implements TL-1.0, the type-length-value record format carried
// inside a block's inflated plaintext.
//
// Scanner walks an inflated buffer and emits an ordered []Record per block.
// Recognized types (IMU, Temperature, Health, Session, Timestamp) decode to
// typed payloads; unknown types become Raw records and malformed payloads
// for known types become Malformed records — neither aborts the scan. A
// Timestamp record establishes the timestamp context for records that
// follow it within the same block (spec §4.4).
package tlv
