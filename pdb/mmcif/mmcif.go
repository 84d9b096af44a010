package mmcif

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

type bSlice []byte // byte slice

// Table is a loop from the file we were asked to keep. Names are the
// column headings without the table prefix, so _ntc_average.delta_1
// becomes delta_1.
type Table struct {
	Names []string
	Vals  [][]string // one slice per row
}

// MmcifData is what a reader gives back.
type MmcifData struct {
	Data   map[string]string // data items we were asked for
	Tables map[string]Table  // tables we were asked for, keyed without the trailing dot
	Atoms  cmmn.Structure    // every atom_site line that got through the filter
}

// fltr says which atom_site lines we keep.
type fltr struct {
	modelMax int      // -1 for all models
	chains   []string // empty for all chains
}

// MmcifReader holds instructions for reading. Results come back
// from DoFile.
type MmcifReader struct {
	cmmtScanner
	dataToKeep   map[string]bool
	tablesToKeep map[string]bool
	fltr         fltr
	headers      []bSlice
	scrtchBytes  [][]byte
}

// NewMmcifReader returns an object to read mmcif files. The caller
// decides whether r is a file, a decompressor or a memory map.
// By default, every model and every chain is kept.
func NewMmcifReader(r io.Reader) *MmcifReader {
	if r == nil {
		return nil
	}
	return &MmcifReader{
		cmmtScanner:  newCmmtScanner(r, '#'),
		dataToKeep:   make(map[string]bool),
		tablesToKeep: make(map[string]bool),
		fltr:         fltr{modelMax: -1},
		scrtchBytes:  make([][]byte, 25),
	}
}

// SetChains restricts the atoms we keep to the named chains. A chain
// matches on either label_asym_id or auth_asym_id.
func (mr *MmcifReader) SetChains(s []string) {
	mr.fltr.chains = mr.fltr.chains[:0]
	for _, c := range s {
		if c != "" {
			mr.fltr.chains = append(mr.fltr.chains, c)
		}
	}
}

// SetModelMax sets the highest model number we keep.
//
//	-1 means get everything
//	 0 means get nothing
//	 n keeps models 1 to n
func (mr *MmcifReader) SetModelMax(modelMax int) {
	mr.fltr.modelMax = modelMax
}

// AddItems names data items, like _entry.id, to keep.
func (mr *MmcifReader) AddItems(s []string) {
	for _, a := range s {
		mr.dataToKeep[a] = true
	}
}

// AddTable names loops to keep. Give the name with its dot, like
// "_ntc_average.".
func (mr *MmcifReader) AddTable(s []string) {
	for _, a := range s {
		mr.tablesToKeep[a] = true
	}
}

// stateFn is the type of state function. It returns the next state.
type stateFn func(*MmcifReader, *MmcifData) stateFn

// stateData jumps over a data_ line.
func stateData(mr *MmcifReader, _ *MmcifData) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// stateUnknown is where we land when the line makes no sense.
func stateUnknown(mr *MmcifReader, _ *MmcifData) stateFn {
	mr.fill("In Unknown state", true)
	return nil
}

// stateLoopHdr collects the headers of a loop and decides whether
// the table is the atom table, one to keep or one to skip.
func stateLoopHdr(mr *MmcifReader, _ *MmcifData) stateFn {
	if len(mr.headers) != 0 {
		mr.fill("probable bug, headers slice not empty", false)
		return nil
	}
	for ok := true; ok && len(mr.cbytes()) > 0 && mr.cbytes()[0] == '_'; ok = mr.cscan() {
		s := make([]byte, len(mr.cbytes()))
		copy(s, mr.cbytes())
		mr.headers = append(mr.headers, bytes.TrimRight(s, " "))
	}
	if len(mr.headers) < 1 {
		mr.fill("no contents found while reading loop headers", true)
		return nil
	}

	kword := bytes.SplitAfter(mr.headers[0], []byte{'.'})
	if bytes.HasPrefix(kword[0], []byte("_atom_site.")) {
		return stateAtomTable
	}
	if mr.tablesToKeep[string(kword[0])] {
		return stateLoopTable
	}
	mr.headers = mr.headers[:0]
	return stateSkipLoopTable
}

// isSpecial returns true if inline is not more of a table. Usually
// a new directive is coming. The end of input is special too.
func isSpecial(inline []byte) bool {
	switch {
	case inline == nil:
		return true
	case bytes.HasPrefix(inline, []byte("_")):
		return true
	case bytes.HasPrefix(inline, []byte("loop_")):
		return true
	default:
		return false
	}
}

// stateLoopTable reads a table we want into md.Tables.
func stateLoopTable(mr *MmcifReader, md *MmcifData) stateFn {
	const notSplit = "Could not split string at dot: "
	dots := []byte{'.'}
	ncol := len(mr.headers)
	var table Table
	var tblName string

	table.Names = make([]string, 0, ncol)
	for i, word := range mr.headers { // given _ntc_average.delta_1, save delta_1
		t := bytes.SplitAfterN(word, dots, 2)
		if len(t) < 2 {
			mr.fill(notSplit+string(word), true)
			return nil
		}
		if i == 0 {
			tblName = string(t[0][:len(t[0])-1])
		}
		table.Names = append(table.Names, string(t[1]))
	}
	mr.headers = mr.headers[:0]
	var pending []string // values not yet in a row, may hold several rows
	for {
		need := ncol - len(pending)
		b, ok := getNpieces(mr, need)
		if !ok {
			return nil
		}
		pending = append(pending, b...)
		for len(pending) >= ncol {
			table.Vals = append(table.Vals, pending[:ncol:ncol])
			pending = pending[ncol:]
		}
		if len(b) < need {
			break
		}
	}
	if len(pending) != 0 {
		mr.fill(fmt.Sprintf("table %s: %d values left over, %d columns", tblName, len(pending), ncol), true)
		return nil
	}
	md.Tables[tblName] = table
	return stateTop
}

const lineSiz = 92 // A line from the PDB is about 88 bytes
const slSiz = 50   // lines per batch, from benchmarking

// newLineBuf makes one batch of lines for the pool.
func newLineBuf() any {
	var tmp [slSiz * lineSiz]byte
	var x [slSiz]bSlice
	for i, start, end := 0, 0, lineSiz; i < slSiz; i++ {
		x[i] = tmp[start:end:end]
		start = end
		end += lineSiz
	}
	return x[:]
}

// stateAtomTable is a loop table, but it is the biggest and slowest
// one, so it gets its own treatment. We read lines in batches and
// push each batch into a channel. atomSite() turns them into atoms
// while we carry on reading.
func stateAtomTable(mr *MmcifReader, md *MmcifData) stateFn {
	c := make(chan []bSlice, 3) // buffer size from benchmarking
	rChan := make(chan string)
	bufPool := sync.Pool{New: newLineBuf}

	headers := make([]bSlice, len(mr.headers))
	for i, h := range mr.headers {
		headers[i] = bytes.Clone(h)
	}
	go atomSite(headers, mr.fltr, md, c, rChan, &bufPool)
	mr.headers = mr.headers[:0]

	i := 0
	lines := bufPool.Get().([]bSlice)
	for {
		t := mr.cbytes()
		if len(t) > cap(lines[i]) { // default line length too small
			lines[i] = make([]byte, len(t))
		}
		lines[i] = lines[i][:len(t)]
		copy(lines[i], t)

		if i == slSiz-1 {
			i = 0
			c <- lines
			lines = bufPool.Get().([]bSlice)
		} else {
			i++
		}
		if !mr.cscan() || isSpecial(mr.cbytes()) {
			break
		}
	}
	if i > 0 {
		c <- lines[:i]
	}
	close(c)
	if s := <-rChan; s != "" {
		mr.fill(s, false)
		return nil
	}
	return stateTop
}

// stateSkipLoopTable reads over a table we do not want.
func stateSkipLoopTable(mr *MmcifReader, _ *MmcifData) stateFn {
	foundSomething := false
	for ; !isSpecial(mr.cbytes()); mr.cscan() {
		foundSomething = true
	}
	if !foundSomething {
		mr.fill("empty table", true)
		return nil
	}
	return stateTop
}

// stateLoop jumps over the loop_ line.
func stateLoop(mr *MmcifReader, _ *MmcifData) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateLoopHdr
}

// stateDItem gets a data item. The value is usually on the same line,
// but it may be on the next or be a ; delimited text field.
func stateDItem(mr *MmcifReader, md *MmcifData) stateFn {
	const msg = "data split on two lines"
	var value string
	t, err := splitCifLine(mr.cbytes(), mr.scrtchBytes)
	if err != nil {
		mr.fill(err.Error(), true)
		return nil
	}

	itemName := string(t[0])
	switch {
	case len(t) == 2:
		value = string(t[1])
		mr.cscan()
	case len(t) == 1:
		if !mr.cscan() || mr.cbytes() == nil {
			mr.fill(msg, true)
			return nil
		}
		bIn := mr.cbytes()
		if bIn[0] == ';' {
			tmp := string(bIn[1:])
			var ok bool
			for ok = mr.cscan(); ok && mr.cbytes() != nil; ok = mr.cscan() {
				if mr.cbytes()[0] == ';' {
					break
				}
				tmp += string(mr.cbytes())
			}
			if !ok || mr.cbytes() == nil {
				mr.fill(msg, true)
				return nil
			}
			value = tmp
		} else if u, err := splitCifLine(bIn, mr.scrtchBytes); err == nil && len(u) == 1 {
			value = string(u[0])
		} else {
			value = string(bIn)
		}
		mr.cscan() // any error is picked up in the next state
	default:
		mr.fill("too many values for data item "+itemName, true)
		return nil
	}

	if mr.dataToKeep[itemName] {
		md.Data[itemName] = value
	}
	return stateTop
}

// stateTop looks at the current line and decides where to go next.
func stateTop(mr *MmcifReader, _ *MmcifData) stateFn {
	b := mr.cbytes()
	if !mr.Ok {
		return nil
	}
	switch {
	case b == nil:
		return nil
	case bytes.HasPrefix(b, []byte("loop_")):
		return stateLoop
	case bytes.HasPrefix(b, []byte("data")):
		return stateData
	case bytes.HasPrefix(b, []byte("_")):
		return stateDItem
	default:
		return stateUnknown
	}
}

// getNpieces reads whole lines until it has at least npiece values.
// It has to make new strings, since scanning overwrites the underlying
// buffer. If a new directive comes first, ret holds what was read
// before it and ok is true.
func getNpieces(mr *MmcifReader, npiece int) (ret []string, ok bool) {
	for ok = true; len(ret) < npiece && ok; ok = mr.cscan() {
		bIn := mr.cbytes()
		if isSpecial(bIn) {
			return ret, ok
		}
		if bIn[0] == ';' {
			tmp := string(bIn[1:])
			for ok = mr.cscan(); ok; ok = mr.cscan() {
				x := mr.cbytes()
				if len(x) < 1 || x[0] == ';' {
					break
				}
				tmp += string(x)
			}
			if !ok {
				mr.fill("getNpieces", true)
				return nil, false
			}
			ret = append(ret, tmp)
			continue
		}
		var t [][]byte
		if bytes.IndexByte(bIn, squote) < 0 && bytes.IndexByte(bIn, dquote) < 0 {
			t = bytes.Fields(bIn)
		} else {
			var err error
			if t, err = splitCifLine(bIn, mr.scrtchBytes); err != nil {
				mr.fill(err.Error(), true)
				return nil, false
			}
		}
		for _, u := range t {
			ret = append(ret, string(u))
		}
	}
	return ret, ok
}

// DoFile reads everything and gives back what we were asked to keep.
func (mr *MmcifReader) DoFile() (*MmcifData, error) {
	if mr == nil {
		return nil, errors.New("Start of file, nil mmcifReader")
	}
	if !mr.cscan() {
		return nil, mr.l_err
	}
	md := &MmcifData{
		Data:   make(map[string]string),
		Tables: make(map[string]Table),
	}
	for state := stateTop; state != nil && mr.Ok; {
		state = state(mr, md)
	}
	if mr.Ok && mr.n == 0 {
		mr.fill("zero length file", false)
	}
	if !mr.Ok {
		return nil, mr.l_err
	}
	return md, nil
}
