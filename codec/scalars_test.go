package codec_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/reoring/goconjure/codec"
)

func TestDatetime_PreservesOffset(t *testing.T) {
	c := codec.Datetime()
	in := "2017-01-02T03:04:05.123+01:00"
	got, err := c.Decode(in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if _, off := got.Zone(); off != 3600 {
		t.Fatalf("expected +01:00 offset, got %d", off)
	}
	if !got.Equal(time.Date(2017, 1, 2, 2, 4, 5, 123_000_000, time.UTC)) {
		t.Fatalf("unexpected instant: %v", got)
	}
	out, err := c.Encode(got)
	if err != nil || out != in {
		t.Fatalf("roundtrip mismatch: %q err=%v", out, err)
	}
}

func TestDatetime_Invalid(t *testing.T) {
	_, err := codec.Datetime().Decode("2017-01-02 03:04:05")
	var ce *codec.Error
	if !errors.As(err, &ce) || ce.Format != "datetime" {
		t.Fatalf("expected codec.Error, got %v", err)
	}
}

func TestUUID(t *testing.T) {
	c := codec.UUID()
	for _, ok := range []string{"00010203-0405-0607-0809-0a0b0c0d0e0f", "000102030405060708090a0b0c0d0e0f"} {
		u, err := c.Decode(ok)
		if err != nil {
			t.Fatalf("decode %q: %v", ok, err)
		}
		if s, _ := c.Encode(u); s != "00010203-0405-0607-0809-0a0b0c0d0e0f" {
			t.Fatalf("unexpected canonical form %q", s)
		}
	}
	for _, bad := range []string{"", "urn:uuid:00010203-0405-0607-0809-0a0b0c0d0e0f", "{00010203-0405-0607-0809-0a0b0c0d0e0f}", "zz010203-0405-0607-0809-0a0b0c0d0e0f"} {
		if _, err := c.Decode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestBinary(t *testing.T) {
	c := codec.Binary()
	b, err := c.Decode("AAEC")
	if err != nil || !bytes.Equal(b, []byte{0, 1, 2}) {
		t.Fatalf("decode: %v %v", b, err)
	}
	if s, _ := c.Encode([]byte("hi")); s != "aGk=" {
		t.Fatalf("encode: %q", s)
	}
	if _, err := c.Decode("not base64!"); err == nil {
		t.Fatalf("expected invalid base64 error")
	}
}

func TestIntegerAndSafelong(t *testing.T) {
	cases := []struct {
		in      string
		int32OK bool
		safeOK  bool
		rangeEr bool
	}{
		{"0", true, true, false},
		{"-2147483648", true, true, false},
		{"2147483648", false, true, true},
		{"9007199254740991", false, true, true},
		{"-9007199254740992", false, false, true},
		{"1.0", false, false, false},
		{"1e3", false, false, false},
		{"abc", false, false, false},
	}
	for _, tc := range cases {
		_, err := codec.Integer().Decode(tc.in)
		if (err == nil) != tc.int32OK {
			t.Errorf("Integer(%q) err=%v", tc.in, err)
		}
		_, err = codec.Safelong().Decode(tc.in)
		if (err == nil) != tc.safeOK {
			t.Errorf("Safelong(%q) err=%v", tc.in, err)
		}
		if !tc.safeOK && tc.rangeEr && !errors.Is(err, codec.ErrOutOfRange) {
			t.Errorf("Safelong(%q) expected ErrOutOfRange, got %v", tc.in, err)
		}
	}
	if _, err := codec.Safelong().Encode(codec.MaxSafelong + 1); !errors.Is(err, codec.ErrOutOfRange) {
		t.Fatalf("expected range error on encode, got %v", err)
	}
}
