package tlv

// Type is the TLV record type tag (spec §3).
type Type uint8

const (
	TypeIMU         Type = 0x01
	TypeTemperature Type = 0x02
	TypeHealth      Type = 0x03
	TypeSession     Type = 0x04
	TypeTimestamp   Type = 0x05
)

// Kind discriminates which field of Record is populated.
type Kind uint8

const (
	KindIMU Kind = iota + 1
	KindTemperature
	KindHealth
	KindSession
	KindTimestamp
	KindRaw       // unknown type, payload preserved verbatim
	KindMalformed // known type, payload length did not match its schema
)

func (k Kind) String() string {
	switch k {
	case KindIMU:
		return "imu"
	case KindTemperature:
		return "temperature"
	case KindHealth:
		return "health"
	case KindSession:
		return "session"
	case KindTimestamp:
		return "timestamp"
	case KindRaw:
		return "raw"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// IMU is the decoded payload of a TypeIMU record: 6 LE float32 fields.
type IMU struct {
	AccelX, AccelY, AccelZ float32 // m/s^2
	GyroX, GyroY, GyroZ    float32 // rad/s
}

// IMULength is the required payload length for a TypeIMU record.
const IMULength = 24

// Temperature is the decoded payload of a TypeTemperature record.
type Temperature struct {
	Celsius  float32
	SensorID uint32
}

// TemperatureLength is the required payload length for a TypeTemperature record.
const TemperatureLength = 8

// Health is the decoded payload of a TypeHealth record.
type Health struct {
	BatteryVoltage  float32
	CPUTemperature  float32
	MemoryUsageByte uint32
	ErrorCode       uint32
}

// HealthLength is the required payload length for a TypeHealth record.
const HealthLength = 16

// Session is the decoded payload of a TypeSession record. Reserved holds the
// trailing bytes beyond the 20-byte fixed prefix verbatim: their meaning is
// undefined by the source firmware documentation, so they are preserved as
// an opaque blob rather than discarded (spec §9 Open Question).
type Session struct {
	SessionID       [16]byte
	FirmwareVersion uint32
	Reserved        []byte
}

// SessionMinLength is the minimum payload length for a TypeSession record.
const SessionMinLength = 20

// Timestamp is the decoded payload of a TypeTimestamp record.
type Timestamp struct {
	Microseconds uint64
}

// TimestampLength is the required payload length for a TypeTimestamp record.
const TimestampLength = 8

// Raw preserves an unrecognized type's payload verbatim so exporters can log
// it without the scan aborting (spec §4.4).
type Raw struct {
	Type    uint8
	Payload []byte
}

// Malformed records that a known type's payload length did not match its
// schema. The record is kept (not discarded) and the block scan continues.
type Malformed struct {
	Type   uint8
	Length uint16
	Reason string
}

// Record is one decoded TLV entry plus its provenance: which block it came
// from, its cursor-order index within that block, and the timestamp context
// in effect when it was decoded (nil if no Timestamp record has appeared yet
// in this block).
type Record struct {
	Kind         Kind
	BlockID      uint16
	Index        int
	TimestampMic *int64 // microseconds since Unix epoch, nil if no timestamp context yet

	IMU         *IMU
	Temperature *Temperature
	Health      *Health
	Session     *Session
	Timestamp   *Timestamp
	Raw         *Raw
	Malformed   *Malformed
}
