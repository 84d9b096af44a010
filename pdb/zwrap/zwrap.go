// Package zwrap takes a file and optionally wraps it so reads go
// through a decompressor. Upon calling Close, the decompressor will
// be closed, followed by the underlying file.
// Files are memory mapped. I benchmarked with and without buffering
// in Wrap(). I could not measure any difference.

package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// FpGzip is what we return. If zrdr is nil, reads go straight to fp.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying source.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap wraps a source in a gzip reader. It fails if the source is not
// compressed.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(fp)
	return &FpGzip{fp: fp, zrdr: zrdr}, err
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap it if necessary.
// If you pass in something which can seek, you get back something
// which cannot. This is the price of a compressed reader.
func WrapMaybe(fpIn io.ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	return &FpGzip{fp: fpIn}, err
}

// mapped is a memory mapped file that reads like any other.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	return errors.Join(m.mm.Unmap(), m.fp.Close())
}

// Open maps a file into memory and hands it to WrapMaybe. An empty
// file cannot be mapped, so it is read the usual way.
func Open(fname string) (io.ReadCloser, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fi.IsDir() {
		fp.Close()
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	if fi.Size() == 0 {
		return WrapMaybe(fp)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	r, err := WrapMaybe(&mapped{Reader: bytes.NewReader(mm), mm: mm, fp: fp})
	if err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}
