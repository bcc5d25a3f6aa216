package domain

import (
	"encoding/base64"
	"encoding/binary"
	"math"
)

// EncodeVector serializes a vector to its storage form: base64 over
// little-endian float32 bytes. The round-trip through DecodeVector is
// bit-exact, so similarity rankings computed from stored vectors match
// those computed from the originals. An empty vector encodes to "".
func EncodeVector(v []float32) string {
	if len(v) == 0 {
		return ""
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeVector parses a stored vector. Malformed input (bad base64, a
// byte length that is not a multiple of 4, or an empty string) returns
// (nil, false); stored corruption is treated as "no embedding", never
// as an error.
func DecodeVector(s string) ([]float32, bool) {
	if s == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, false
	}
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v, true
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or a zero-norm operand score 0 rather than erroring;
// a skipped candidate is preferable to a failed scan.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
