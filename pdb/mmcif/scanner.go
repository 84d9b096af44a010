package mmcif

import (
	"bufio"
	"io"
)

// maxLine is the longest line the scanner will take. Text fields in
// some depositions are one very long line.
const maxLine = 1024 * 1024

// cmmtScanner wraps bufio.Scanner. It skips blank lines and lines
// starting with the comment character. It counts lines in n, so error
// messages can say where we were.
type cmmtScanner struct {
	*bufio.Scanner
	l_err  readError // filled as soon as something goes wrong
	ctoken []byte    // what cbytes() returns
	n      int       // line number
	cmmt   byte      // comment character
	Ok     bool      // false after the first error
}

// newCmmtScanner gives back a scanner reading from r.
// An MmcifReader embeds one.
func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return cmmtScanner{
		Scanner: sc,
		cmmt:    cmmt,
		Ok:      true,
	}
}

// cscan is a wrapper around Scan(). A comment is only recognised as
// the first character of a line, since '#' is legal inside values.
// At EOF, ok is true and ctoken is nil. ok is only false on a read
// error or if an earlier error was not noticed.
func (s *cmmtScanner) cscan() (ok bool) {
	var b []byte
	if !s.Ok {
		s.ctoken = nil
		s.fill("pre-existing error missed. Small bug ?", false)
		return false
	}
	for len(b) == 0 {
		if !s.Scan() {
			s.ctoken = nil
			if err := s.Err(); err != nil {
				s.fill(err.Error(), true)
				return false
			}
			return true // plain EOF
		}
		s.n++
		b = s.Bytes()
		if len(b) > 0 && b[0] == s.cmmt {
			b = nil
		}
	}
	s.ctoken = b
	return true
}

// cbytes is like Bytes from the library, but gives back the line
// cscan settled on.
func (s *cmmtScanner) cbytes() []byte {
	return s.ctoken
}
