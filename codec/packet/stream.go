// Package packet adapts the byte-slice encoding package to callers that
// hand over an io.Reader (a net.Conn, a bufio.Reader) instead of an
// already-framed packet slice. It duplicates only the fixed-header/
// remaining-length framing step — the same duplication the teacher's own
// codec/packet and encoding packages carry — and delegates everything
// past that to encoding.Parse.
package packet

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/axmq/mqtt5codec/encoding"
)

// ReadControlPacket reads exactly one MQTT control packet from r: the fixed
// header byte, the Variable Byte Integer remaining length (bounded by
// settings.MaxRemainingBytes), then that many further bytes, and hands the
// assembled frame to encoding.Parse. It performs no partial/streaming
// parsing of a single packet — see the encoding package's own non-goals.
func ReadControlPacket(r io.Reader, settings encoding.Settings) (encoding.ControlPacket, error) {
	var header [1]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, encoding.NewMalformedPacketError(encoding.ErrUnexpectedEOF, "fixed header")
	}

	remaining, lenBytes, err := decodeRemainingLength(r)
	if err != nil {
		return nil, err
	}
	if remaining > settings.MaxRemainingBytes {
		return nil, encoding.NewLimitExceededError(encoding.ErrRemainingLengthLimit, "remaining length")
	}

	frame := make([]byte, 0, 1+len(lenBytes)+int(remaining))
	frame = append(frame, header[0])
	frame = append(frame, lenBytes...)

	body := make([]byte, remaining)
	if remaining > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, encoding.NewMalformedPacketError(encoding.ErrUnexpectedEOF, "packet body")
		}
	}
	frame = append(frame, body...)

	return encoding.Parse(frame, settings)
}

// decodeRemainingLength delegates the Variable Byte Integer decode itself to
// encoding.DecodeVariableByteInteger, capturing the raw bytes it consumes (via
// a tee) so the caller can reassemble the complete frame encoding.Parse
// expects.
func decodeRemainingLength(r io.Reader) (uint32, []byte, error) {
	var raw bytes.Buffer
	value, err := encoding.DecodeVariableByteInteger(io.TeeReader(r, &raw))
	if err != nil {
		if errors.Is(err, encoding.ErrUnexpectedEOF) {
			return 0, nil, encoding.NewMalformedPacketError(encoding.ErrUnexpectedEOF, "remaining length")
		}
		return 0, nil, encoding.NewMalformedPacketError(err, "remaining length")
	}
	return value, raw.Bytes(), nil
}

// WriteControlPacket buffers w (if it is not already a *bufio.Writer) so
// the packet's many small field writes don't each become a separate
// syscall, then flushes after encoding.
func WriteControlPacket(w io.Writer, p encoding.ControlPacket) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	if err := p.Encode(bw); err != nil {
		return err
	}
	return bw.Flush()
}
