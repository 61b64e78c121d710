package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTableKnownVectors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		record   []byte
		expected float64
	}{
		{
			name:     "fraction only",
			record:   []byte{0x15, 0x6e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			expected: float64(0x6e15) / 65536.0, // ≈0.4305
		},
		{
			name:     "integer and fraction",
			record:   []byte{0x00, 0x40, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00},
			expected: 1.25,
		},
		{
			name:     "zero",
			record:   []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			expected: 0.0,
		},
		{
			name:     "negative integer part",
			record:   []byte{0x00, 0x80, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00},
			expected: -1.0 + 0.5,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			samples, err := DecodeTable(tc.record)
			assert.Equal(t, nil, err)
			assert.Equal(t, 1, len(samples))
			assert.InDelta(t, tc.expected, samples[0], 1e-9)
		})
	}
}

func TestDecodeTablePaddingIgnored(t *testing.T) {
	plain := []byte{0x15, 0x6e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	noisy := []byte{0x15, 0x6e, 0x00, 0x00, 0xde, 0xad, 0xbe, 0xef}

	a, err := DecodeTable(plain)
	assert.Equal(t, nil, err)
	b, err := DecodeTable(noisy)
	assert.Equal(t, nil, err)
	assert.Equal(t, a, b)
}

func TestDecodeTableRecordCount(t *testing.T) {
	for _, records := range []int{0, 1, 2, 5, 16} {
		data := make([]byte, records*8)
		samples, err := DecodeTable(data)
		assert.Equal(t, nil, err)
		assert.Equal(t, records, len(samples))
	}
}

func TestDecodeTableBadLength(t *testing.T) {
	_, err := DecodeTable(make([]byte, 7))
	var decodeErr DecodeError
	assert.Equal(t, true, errors.As(err, &decodeErr))
	assert.Equal(t, 7, decodeErr.Length)

	_, err = DecodeTable(make([]byte, 12))
	assert.Equal(t, true, errors.As(err, &decodeErr))
}

func TestDecodeSmoothMouseTables(t *testing.T) {
	xs, err := DecodeTable(SmoothMouseXCurve)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, len(xs))
	assert.InDelta(t, 0.0, xs[0], 1e-9)
	assert.InDelta(t, float64(0x6e15)/65536.0, xs[1], 1e-9)
	assert.InDelta(t, 1.25, xs[2], 1e-9)
	assert.InDelta(t, 3.0+float64(0xdc29)/65536.0, xs[3], 1e-9)
	assert.InDelta(t, 40.0, xs[4], 1e-9)

	ys, err := DecodeTable(SmoothMouseYCurve)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, len(ys))
	assert.InDelta(t, 1.0+float64(0x11fd)/65536.0, ys[1], 1e-9)
	assert.InDelta(t, 4.0+float64(0x2400)/65536.0, ys[2], 1e-9)
	assert.InDelta(t, 18.0+float64(0xfc00)/65536.0, ys[3], 1e-9)
	assert.InDelta(t, 1.0+float64(0xbbc0)/65536.0, ys[4], 1e-9)
}

func TestZipTables(t *testing.T) {
	points, err := ZipTables(SmoothMouseXCurve, SmoothMouseYCurve)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, len(points))
	assert.InDelta(t, 1.25, points[2].Input, 1e-9)
	assert.InDelta(t, 4.0+float64(0x2400)/65536.0, points[2].Output, 1e-9)
}

func TestZipTablesMismatchedLength(t *testing.T) {
	_, err := ZipTables(make([]byte, 16), make([]byte, 24))
	var mismatch MismatchedLengthError
	assert.Equal(t, true, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.X)
	assert.Equal(t, 3, mismatch.Y)
}

func TestZipTablesPropagatesDecodeError(t *testing.T) {
	_, err := ZipTables(make([]byte, 3), make([]byte, 8))
	var decodeErr DecodeError
	assert.Equal(t, true, errors.As(err, &decodeErr))
}
