package binary

import "encoding/binary"

// Unsigned is the set of integer widths the readers decode.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// ReadBE reads a big-endian value of type T at off.
// ID3v2 frame headers use this byte order.
func ReadBE[T Unsigned](sr *SafeReader, off int64, what string) (T, error) {
	return readOrder[T](sr, off, what, binary.BigEndian)
}

// ReadLE reads a little-endian value of type T at off.
// RIFF chunk sizes use this byte order.
func ReadLE[T Unsigned](sr *SafeReader, off int64, what string) (T, error) {
	return readOrder[T](sr, off, what, binary.LittleEndian)
}

func readOrder[T Unsigned](sr *SafeReader, off int64, what string, order binary.ByteOrder) (T, error) {
	var zero T

	var width int
	switch any(zero).(type) {
	case uint8:
		width = 1
	case uint16:
		width = 2
	case uint32:
		width = 4
	case uint64:
		width = 8
	}

	buf := make([]byte, width)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	switch width {
	case 1:
		return T(buf[0]), nil
	case 2:
		return T(order.Uint16(buf)), nil
	case 4:
		return T(order.Uint32(buf)), nil
	default:
		return T(order.Uint64(buf)), nil
	}
}

// Synchsafe decodes a 28-bit ID3v2 synchsafe integer (7 bits per byte).
func Synchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
