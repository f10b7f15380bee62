package codec

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSafelong is the largest magnitude a safelong may carry, 2^53-1.
const MaxSafelong = 1<<53 - 1

// Datetime returns a Codec between RFC 3339 strings and time.Time. The
// parsed offset is preserved and Encode writes it back unchanged.
func Datetime() Codec[string, time.Time] { return datetimeCodec{} }

type datetimeCodec struct{}

func (datetimeCodec) Decode(s string) (time.Time, error) {
	t, err := parseRFC3339(s)
	if err != nil {
		return time.Time{}, fail("datetime", s, err)
	}
	return t, nil
}

func (datetimeCodec) Encode(t time.Time) (string, error) {
	return t.Format(time.RFC3339Nano), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// UUID returns a Codec for UUIDs in hyphenated or 32-digit hex form. URN
// and braced forms are rejected.
func UUID() Codec[string, uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Decode(s string) (uuid.UUID, error) {
	if len(s) != 36 && len(s) != 32 {
		return uuid.UUID{}, fail("uuid", s, errors.New("expected 32 hex digits, optionally hyphenated"))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fail("uuid", s, err)
	}
	return u, nil
}

func (uuidCodec) Encode(u uuid.UUID) (string, error) { return u.String(), nil }

// Binary returns a Codec between standard padded base64 and bytes.
func Binary() Codec[string, []byte] { return binaryCodec{} }

type binaryCodec struct{}

func (binaryCodec) Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fail("binary", s, err)
	}
	return b, nil
}

func (binaryCodec) Encode(b []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(b), nil
}

// Integer returns a Codec for 32-bit signed integers written without a
// fraction or exponent.
func Integer() Codec[string, int32] { return integerCodec{} }

type integerCodec struct{}

func (integerCodec) Decode(s string) (int32, error) {
	n, err := parseIntegral("integer", s, 32)
	return int32(n), err
}

func (integerCodec) Encode(n int32) (string, error) { return strconv.FormatInt(int64(n), 10), nil }

// Safelong returns a Codec for integers whose magnitude is at most
// MaxSafelong. Values outside that range fail with ErrOutOfRange.
func Safelong() Codec[string, int64] { return safelongCodec{} }

type safelongCodec struct{}

func (safelongCodec) Decode(s string) (int64, error) {
	n, err := parseIntegral("safelong", s, 64)
	if err != nil {
		return 0, err
	}
	if n > MaxSafelong || n < -MaxSafelong {
		return 0, fail("safelong", s, ErrOutOfRange)
	}
	return n, nil
}

func (safelongCodec) Encode(n int64) (string, error) {
	if n > MaxSafelong || n < -MaxSafelong {
		return "", fail("safelong", strconv.FormatInt(n, 10), ErrOutOfRange)
	}
	return strconv.FormatInt(n, 10), nil
}

func parseIntegral(format, s string, bits int) (int64, error) {
	if strings.ContainsAny(s, ".eE") {
		return 0, fail(format, s, errors.New("not an integer"))
	}
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fail(format, s, ErrOutOfRange)
		}
		return 0, fail(format, s, errors.New("not an integer"))
	}
	return n, nil
}
