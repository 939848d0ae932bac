// Package serialize packs query documents into a compact binary form:
// a short header followed by zstd-compressed MessagePack.
package serialize

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/hugr-lab/jql-go/internal/msgpack"
)

// Version is the current packed format version.
const Version byte = 1

// MaxPayload is the largest MessagePack payload Pack produces and Unpack accepts.
const MaxPayload = 1 << 20

var magic = []byte("JQL")

var (
	// ErrBadHeader indicates the data does not start with a packed document header.
	ErrBadHeader = errors.New("not a packed query document")

	// ErrUnsupportedVersion indicates a packed document from a newer format.
	ErrUnsupportedVersion = errors.New("unsupported packed document version")

	// ErrCorrupt indicates the compressed payload could not be read.
	ErrCorrupt = errors.New("corrupt packed document")

	// ErrTooLarge indicates a payload above MaxPayload.
	ErrTooLarge = errors.New("packed document too large")
)

// The coders are created on first use and shared; EncodeAll and DecodeAll
// are safe for concurrent use.
var (
	encoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	})
	decoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxPayload))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return dec, nil
	})
)

// Pack encodes v as MessagePack, compresses it and prepends the header.
func Pack(v any) ([]byte, error) {
	data, err := msgpack.Encode(v)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	compressed, err := compress(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(magic)+1+len(compressed))
	out = append(out, magic...)
	out = append(out, Version)
	return append(out, compressed...), nil
}

// Unpack reverses Pack, decoding the payload into v.
func Unpack(data []byte, v any) error {
	payload, err := open(data)
	if err != nil {
		return err
	}
	if err := msgpack.Decode(payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}

// Inspect unpacks data into generic maps without binding it to a type.
func Inspect(data []byte) (map[string]any, error) {
	payload, err := open(data)
	if err != nil {
		return nil, err
	}
	m, err := msgpack.DecodeMap(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return m, nil
}

// open checks the header and returns the decompressed payload.
func open(data []byte) ([]byte, error) {
	if len(data) < len(magic)+1 || !bytes.HasPrefix(data, magic) {
		return nil, ErrBadHeader
	}
	if ver := data[len(magic)]; ver != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, ver)
	}
	return decompress(data[len(magic)+1:])
}

func compress(data []byte) ([]byte, error) {
	enc, err := encoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorrupt)
	}
	dec, err := decoder()
	if err != nil {
		return nil, err
	}

	payload, err := dec.DecodeAll(compressed, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	case len(payload) > MaxPayload:
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(payload))
	}
	return payload, nil
}
