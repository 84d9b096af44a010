// Package brokenio wraps a reader so that it goes wrong in a
// controlled way. Wrap a file, decompressor or string reader and hand
// it to the code under test to see what happens with a truncated or
// damaged file.
//
// A read that goes wrong zeroes the end of what it read and returns an
// error, which is what one sees from a bad disk or network.
package brokenio

import (
	"fmt"
	"io"
)

// ErrBroken is returned by the read that goes wrong.
var ErrBroken = fmt.Errorf("brokenio: artificial read failure")

// Reader passes reads through until FailAfter bytes have gone by.
type Reader struct {
	rdr      io.Reader
	failAt   int     // -1 to never fail
	fracFail float32 // how much of the failing read to wipe out
	zero     bool    // look like a zero length file
	nByte    int
	nCalled  int
}

// NewReader wraps r. Until one of the setters is called, it behaves
// just like r.
func NewReader(r io.Reader) *Reader {
	return &Reader{rdr: r, failAt: -1, fracFail: 0.5}
}

// SetFailAfter makes the first read that takes us past n bytes fail.
// A negative n switches failure off.
func (r *Reader) SetFailAfter(n int) { r.failAt = n }

// SetFracFail sets how much of the failing read is wiped out. 0.3
// wipes out the last 30 %.
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetZeroFile makes the first read return io.EOF.
func (r *Reader) SetZeroFile(z bool) { r.zero = z }

// NByte is how much has been read so far.
func (r *Reader) NByte() int { return r.nByte }

// trashSlice wipes out the second part of a slice. The amount to wipe
// out is given by a fraction.
func trashSlice(p []byte, frac float32) int {
	nkeep := int(float32(len(p)) * (1. - frac))
	clear(p[nkeep:])
	return nkeep
}

// Read wraps the original reader and counts what goes through.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.nCalled == 1 && r.zero {
		return 0, io.EOF
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	if r.failAt >= 0 && r.nByte > r.failAt {
		m := trashSlice(p[:n], r.fracFail)
		r.nByte -= n - m
		return m, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
	}
	return n, err
}

// Close closes the original reader, if it can be closed.
func (r *Reader) Close() error {
	if c, ok := r.rdr.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
