package types

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/m-mizutani/goerr/v2"
)

// CorrelationID is the opaque token embedded in a follow-up control. It is
// generated with 160 bits of entropy so ids are unguessable and unique with
// overwhelming probability.
type CorrelationID string

const correlationIDBytes = 20

// NewCorrelationID generates a fresh random CorrelationID
func NewCorrelationID() CorrelationID {
	buf := make([]byte, correlationIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("failed to read random source: " + err.Error())
	}
	return CorrelationID(hex.EncodeToString(buf))
}

// Validate checks that the id has the expected length and alphabet
func (x CorrelationID) Validate() error {
	if len(x) != correlationIDBytes*2 {
		return goerr.Wrap(ErrInvalidID, "invalid correlation ID length", goerr.V("len", len(x)))
	}
	if _, err := hex.DecodeString(string(x)); err != nil {
		return goerr.Wrap(ErrInvalidID, "correlation ID is not hex")
	}
	return nil
}

// String returns the string representation of the correlation ID
func (x CorrelationID) String() string {
	return string(x)
}
