package classfile

import (
	"encoding/binary"
	"io"
	"unicode/utf16"
)

// reader reads big-endian values and remembers the first error, so callers
// can check once after a group of reads.
type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func (r *reader) skip(n int) {
	if r.err != nil {
		return
	}
	_, r.err = io.CopyN(io.Discard, r.r, int64(n))
}

// decodeModifiedUtf8 decodes the class-file string encoding: NUL is two bytes
// and supplementary characters are stored as surrogate pairs, each pair half
// encoded as its own three-byte sequence.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			// Malformed; keep the byte so names stay distinguishable.
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
