package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// Snowflake is a numeric platform identifier for users, channels and guilds.
type Snowflake uint64

// ParseSnowflake parses a decimal string into a Snowflake
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidID, "invalid snowflake", goerr.V("value", s))
	}
	return Snowflake(v), nil
}

// String returns the decimal representation of the snowflake
func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Int64 reinterprets the snowflake as a signed 64-bit integer for storage.
// The conversion preserves the bit pattern; values above 2^63-1 map to
// negative integers and round-trip losslessly through SnowflakeFromInt64.
func (s Snowflake) Int64() int64 {
	return int64(s)
}

// SnowflakeFromInt64 restores a snowflake from its stored signed form
func SnowflakeFromInt64(v int64) Snowflake {
	return Snowflake(uint64(v))
}

// Mention returns the platform mention syntax for a user snowflake
func (s Snowflake) Mention() string {
	return "<@" + s.String() + ">"
}
