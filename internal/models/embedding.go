package models

import (
	"database/sql/driver"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEmbedding is returned when a stored embedding cannot be decoded.
var ErrInvalidEmbedding = errors.New("invalid face embedding")

// FeatureVector is a face embedding produced by the biometric service.
// It is stored as little-endian float32 values.
type FeatureVector []float32

// MarshalBinary encodes the vector for storage.
func (v FeatureVector) MarshalBinary() ([]byte, error) {
	if len(v) == 0 {
		return nil, ErrInvalidEmbedding
	}
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf, nil
}

// UnmarshalBinary decodes a stored vector.
func (v *FeatureVector) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || len(data)%4 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidEmbedding, len(data))
	}
	out := make(FeatureVector, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	*v = out
	return nil
}

// Value implements driver.Valuer.
func (v FeatureVector) Value() (driver.Value, error) {
	return v.MarshalBinary()
}

// Scan implements sql.Scanner.
func (v *FeatureVector) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return v.UnmarshalBinary(data)
	case nil:
		*v = nil
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidEmbedding, src)
	}
}

// Float64s returns the vector widened to float64.
func (v FeatureVector) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
