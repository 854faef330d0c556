package eventlog

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// compress encodes data as an LZ4 block prefixed with its uncompressed
// length. Incompressible input is stored raw with a zero block length.
func compress(data []byte) ([]byte, error) {
	header := make([]byte, binary.MaxVarintLen64*2)
	n := binary.PutUvarint(header, uint64(len(data)))
	if len(data) == 0 {
		return header[:n], nil
	}

	block := make([]byte, lz4.CompressBlockBound(len(data)))
	size, err := lz4.CompressBlock(data, block, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if size == 0 {
		n += binary.PutUvarint(header[n:], 0)
		return append(header[:n], data...), nil
	}
	n += binary.PutUvarint(header[n:], uint64(size))
	return append(header[:n], block[:size]...), nil
}

func decompress(data []byte) ([]byte, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad length header", ErrCorruptPayload)
	}
	if length == 0 {
		return []byte{}, nil
	}
	data = data[n:]
	blockLen, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad block header", ErrCorruptPayload)
	}
	data = data[n:]
	if blockLen == 0 {
		if uint64(len(data)) != length {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, want %d", ErrCorruptPayload, len(data), length)
		}
		return append([]byte(nil), data...), nil
	}

	out := make([]byte, length)
	size, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	if uint64(size) != length {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrCorruptPayload, size, length)
	}
	return out, nil
}
