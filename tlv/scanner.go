package tlv

import (
	"fmt"
	"math"

	"github.com/shootbywire/sbwdecode/endian"
	"github.com/shootbywire/sbwdecode/errs"
)

// TailSkip describes why a scan stopped before consuming the whole buffer:
// a truncated record header, or a declared length that overruns the
// remaining bytes. Records already decoded before the tail skip are not
// discarded (spec §4.4 TLV locality invariant).
type TailSkip struct {
	Reason string
	Type   uint8
	Length uint16
	Err    error // the errs sentinel Reason names, for errors.Is
}

func (t TailSkip) Error() string {
	return fmt.Sprintf("tlv: tail skip: %s", t.Reason)
}

// Unwrap exposes Err so errors.Is/errors.As reach the wrapped sentinel.
func (t TailSkip) Unwrap() error {
	return t.Err
}

// ScanResult is the output of scanning one block's inflated plaintext.
type ScanResult struct {
	Records []Record
	Tail    *TailSkip
}

// Scanner walks an inflated buffer emitting TLV records. It holds no
// state between calls to Scan; each call is independent and corresponds to
// one block.
type Scanner struct {
	engine endian.EndianEngine
}

// NewScanner creates a Scanner. TLV payloads are always little-endian
// (spec §6).
func NewScanner() Scanner {
	return Scanner{engine: endian.GetLittleEndianEngine()}
}

// Scan walks data, the inflated plaintext of one block, and returns its
// decoded records in cursor order plus an optional tail skip.
func (s Scanner) Scan(data []byte, blockID uint16) ScanResult {
	var (
		records  []Record
		cursor   int
		curTs    *int64
		recIndex int
	)

	for {
		remaining := len(data) - cursor
		if remaining == 0 {
			return ScanResult{Records: records}
		}

		if remaining < 3 {
			return ScanResult{Records: records, Tail: &TailSkip{Reason: "truncated_header", Err: errs.ErrTruncatedTLVHeader}}
		}

		typ := data[cursor]
		length := s.engine.Uint16(data[cursor+1 : cursor+3])

		if int(length) > remaining-3 {
			return ScanResult{Records: records, Tail: &TailSkip{Reason: "length_overrun", Type: typ, Length: length, Err: errs.ErrLengthOverrun}}
		}

		payload := data[cursor+3 : cursor+3+int(length)]

		rec := s.decode(typ, length, payload, blockID, recIndex, curTs)
		if rec.Kind == KindTimestamp {
			ts := int64(rec.Timestamp.Microseconds) //nolint:gosec // wire value, truncation not meaningful here
			curTs = &ts
		}

		records = append(records, rec)
		recIndex++
		cursor += 3 + int(length)
	}
}

func (s Scanner) decode(typ uint8, length uint16, payload []byte, blockID uint16, index int, curTs *int64) Record {
	rec := Record{BlockID: blockID, Index: index, TimestampMic: curTs}

	switch Type(typ) {
	case TypeIMU:
		if length != IMULength {
			rec.Kind = KindMalformed
			rec.Malformed = &Malformed{Type: typ, Length: length, Reason: "invalid_length"}
			return rec
		}
		rec.Kind = KindIMU
		rec.IMU = &IMU{
			AccelX: s.float32At(payload, 0),
			AccelY: s.float32At(payload, 4),
			AccelZ: s.float32At(payload, 8),
			GyroX:  s.float32At(payload, 12),
			GyroY:  s.float32At(payload, 16),
			GyroZ:  s.float32At(payload, 20),
		}

		return rec

	case TypeTemperature:
		if length != TemperatureLength {
			rec.Kind = KindMalformed
			rec.Malformed = &Malformed{Type: typ, Length: length, Reason: "invalid_length"}
			return rec
		}
		rec.Kind = KindTemperature
		rec.Temperature = &Temperature{
			Celsius:  s.float32At(payload, 0),
			SensorID: s.engine.Uint32(payload[4:8]),
		}

		return rec

	case TypeHealth:
		if length != HealthLength {
			rec.Kind = KindMalformed
			rec.Malformed = &Malformed{Type: typ, Length: length, Reason: "invalid_length"}
			return rec
		}
		rec.Kind = KindHealth
		rec.Health = &Health{
			BatteryVoltage:  s.float32At(payload, 0),
			CPUTemperature:  s.float32At(payload, 4),
			MemoryUsageByte: s.engine.Uint32(payload[8:12]),
			ErrorCode:       s.engine.Uint32(payload[12:16]),
		}

		return rec

	case TypeSession:
		if length < SessionMinLength {
			rec.Kind = KindMalformed
			rec.Malformed = &Malformed{Type: typ, Length: length, Reason: "invalid_length"}
			return rec
		}
		sess := &Session{FirmwareVersion: s.engine.Uint32(payload[16:20])}
		copy(sess.SessionID[:], payload[0:16])
		if length > SessionMinLength {
			sess.Reserved = append([]byte{}, payload[SessionMinLength:]...)
		}
		rec.Kind = KindSession
		rec.Session = sess

		return rec

	case TypeTimestamp:
		if length != TimestampLength {
			rec.Kind = KindMalformed
			rec.Malformed = &Malformed{Type: typ, Length: length, Reason: "invalid_length"}
			return rec
		}
		rec.Kind = KindTimestamp
		rec.Timestamp = &Timestamp{Microseconds: s.engine.Uint64(payload)}

		return rec

	default:
		rec.Kind = KindRaw
		rec.Raw = &Raw{Type: typ, Payload: append([]byte{}, payload...)}

		return rec
	}
}

func (s Scanner) float32At(payload []byte, offset int) float32 {
	return math.Float32frombits(s.engine.Uint32(payload[offset : offset+4]))
}
