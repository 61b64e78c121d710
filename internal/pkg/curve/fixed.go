package curve

import (
	"encoding/binary"
	"fmt"
)

// Windows mouse drivers encode acceleration curve samples as 8-byte
// little-endian fixed-point records: 2 bytes of unsigned fractional
// magnitude, 2 bytes of signed integer part and 4 bytes of padding.
const recordSize = 8

// DecodeError reports a byte table whose length is not a whole number
// of fixed-point records.
type DecodeError struct {
	Length int
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("curve table length %d is not a multiple of %d", e.Length, recordSize)
}

// MismatchedLengthError reports X and Y tables that decoded to a
// different number of samples and therefore cannot be zipped.
type MismatchedLengthError struct {
	X, Y int
}

func (e MismatchedLengthError) Error() string {
	return fmt.Sprintf("mismatched curve tables: %d x-samples vs %d y-samples", e.X, e.Y)
}

// DecodeTable decodes a flat fixed-point byte table into one real value
// per record, preserving record order. Each value is the signed integer
// part plus the fractional part divided by 65536. The padding bytes are
// ignored, not validated.
func DecodeTable(data []byte) ([]float64, error) {
	if len(data)%recordSize != 0 {
		return nil, DecodeError{Length: len(data)}
	}

	samples := make([]float64, 0, len(data)/recordSize)
	for i := 0; i < len(data); i += recordSize {
		frac := binary.LittleEndian.Uint16(data[i : i+2])
		whole := int16(binary.LittleEndian.Uint16(data[i+2 : i+4]))
		samples = append(samples, float64(whole)+float64(frac)/65536.0)
	}
	return samples, nil
}

// ZipTables decodes the X and Y axis tables and pairs them index-wise
// into plottable coordinates.
func ZipTables(xTable, yTable []byte) ([]Point, error) {
	xs, err := DecodeTable(xTable)
	if err != nil {
		return nil, fmt.Errorf("x table: %w", err)
	}
	ys, err := DecodeTable(yTable)
	if err != nil {
		return nil, fmt.Errorf("y table: %w", err)
	}
	if len(xs) != len(ys) {
		return nil, MismatchedLengthError{X: len(xs), Y: len(ys)}
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{Input: xs[i], Output: ys[i]}
	}
	return points, nil
}

// SmoothMouse curve tables as shipped by the Windows driver registry,
// kept as static fixtures for decoding and plotting.
var (
	SmoothMouseXCurve = []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x15, 0x6e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x40, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x29, 0xdc, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x28, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	SmoothMouseYCurve = []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xfd, 0x11, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x24, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0xfc, 0x12, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xc0, 0xbb, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
)
