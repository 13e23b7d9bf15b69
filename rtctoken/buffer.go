package rtctoken

import (
	"encoding/binary"
	"errors"
)

var errShortBuffer = errors.New("short buffer")

// writeBuf is a growable byte buffer with a write cursor. All integers are
// unsigned little-endian and byte slices carry a uint16 length prefix; the
// exact layout is the wire contract with the RTC service.
type writeBuf struct {
	b []byte
}

func (w *writeBuf) putUint16(v uint16) {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
}

func (w *writeBuf) putUint32(v uint32) {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
}

// putBytes assumes len(p) fits a uint16; real-world channel names and uids
// never come close to the limit.
func (w *writeBuf) putBytes(p []byte) {
	w.putUint16(uint16(len(p)))
	w.b = append(w.b, p...)
}

func (w *writeBuf) putString(s string) {
	w.putBytes([]byte(s))
}

// pack returns exactly the bytes written so far, no padding.
func (w *writeBuf) pack() []byte {
	return w.b
}

// readBuf is the decoding counterpart, used by Parse and by token consumers.
type readBuf struct {
	b   []byte
	pos int
}

func (r *readBuf) getUint16() (uint16, error) {
	if r.pos+2 > len(r.b) {
		return 0, errShortBuffer
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *readBuf) getUint32() (uint32, error) {
	if r.pos+4 > len(r.b) {
		return 0, errShortBuffer
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *readBuf) getBytes() ([]byte, error) {
	n, err := r.getUint16()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.b) {
		return nil, errShortBuffer
	}
	p := r.b[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return p, nil
}

func (r *readBuf) getString() (string, error) {
	p, err := r.getBytes()
	if err != nil {
		return "", err
	}
	return string(p), nil
}
