package shortuuid

import (
	"crypto/rand"
	"math"
)

const (
	// maxBufLen is the maximum length of a temporary buffer for random bytes.
	maxBufLen = 2048

	// minRegenBufLen is the minimum length of temporary buffer for random bytes
	// to fill after the first rand.Read request didn't produce the full result.
	// If the initial buffer is smaller, this value is ignored.
	minRegenBufLen = 16

	// maxByteValue is the maximum value of a byte (2^8 - 1).
	maxByteValue = 255

	// byteRange is the total number of possible byte values (2^8).
	byteRange = 256
)

// estimatedBufLen returns the estimated number of random bytes to request
// given that byte values greater than maxByte will be rejected.
func estimatedBufLen(need, maxByte int) int {
	return int(math.Ceil(float64(need) * (maxByteValue / float64(maxByte))))
}

// randomSymbols returns length symbols drawn uniformly from symbols
// (at least 2, at most 256 entries).
func randomSymbols(length int, symbols []rune) []rune {
	if length <= 0 {
		return nil
	}

	slen := len(symbols)
	if slen < 2 || slen > byteRange {
		panic("shortuuid: wrong alphabet length for random symbols")
	}

	maxRb := maxByteValue - (byteRange % slen)
	bufLen := estimatedBufLen(length, maxRb)

	if bufLen < length {
		bufLen = length
	}

	if bufLen > maxBufLen {
		bufLen = maxBufLen
	}

	buf := make([]byte, bufLen) // storage for random bytes
	out := make([]rune, length) // storage for result

	var i int // index in out
	for {
		if _, err := rand.Read(buf[:bufLen]); err != nil {
			panic("shortuuid: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf[:bufLen] {
			c := int(rb)
			if c > maxRb {
				// Skip this number to avoid modulo bias.
				continue
			}

			out[i] = symbols[c%slen]
			i++

			if i == length {
				return out
			}
		}

		// Adjust new requested length, but no smaller than minRegenBufLen.
		bufLen = estimatedBufLen(length-i, maxRb)
		if bufLen < minRegenBufLen && minRegenBufLen < cap(buf) {
			bufLen = minRegenBufLen
		}

		if bufLen > maxBufLen {
			bufLen = maxBufLen
		}
	}
}
