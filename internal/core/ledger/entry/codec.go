package entry

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

var (
	ErrShortEntry   = errors.New("entry: data too short")
	ErrTypeMismatch = errors.New("entry: type mismatch")
)

var msgpackHandle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	h.Canonical = true
	return h
}()

// Encode serializes an entry as a 2-byte big-endian type prefix followed by
// the msgpack body.
func Encode(e Entry) ([]byte, error) {
	var body []byte
	if err := codec.NewEncoderBytes(&body, msgpackHandle).Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.EntryType(), err)
	}
	out := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(e.EntryType()))
	return append(out, body...), nil
}

// TypeOf returns the type prefix of encoded entry data.
func TypeOf(data []byte) (Type, error) {
	if len(data) < 2 {
		return 0, ErrShortEntry
	}
	return Type(binary.BigEndian.Uint16(data[:2])), nil
}

// Decode parses data produced by Encode into e. The stored type must match
// e's type.
func Decode(data []byte, e Entry) error {
	t, err := TypeOf(data)
	if err != nil {
		return err
	}
	if t != e.EntryType() {
		return fmt.Errorf("%w: stored %s, want %s", ErrTypeMismatch, t, e.EntryType())
	}
	if err := codec.NewDecoderBytes(data[2:], msgpackHandle).Decode(e); err != nil {
		return fmt.Errorf("decode %s: %w", t, err)
	}
	return nil
}
