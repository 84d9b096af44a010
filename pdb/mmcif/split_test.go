package mmcif_test

import (
	"bytes"
	"testing"

	. "github.com/andrew-torda/stepgeom/pdb/mmcif"
)

type twostring struct {
	in  string
	out string
}

func TestMessyLine(t *testing.T) {
	// This is from 2a9w.cif. I think there should be seven pieces
	ss :=
		`GA9 non-polymer         . '3,3-BIS(3-BR-4-HYD)-7-CH-1H,3H-BEO[DE]ISO-1-ONE'
'4-CHL-3',3"-DIB-1,8-NAPHTH' 'C24 H13 Br2 Cl O4' 560.619
GLN 'L-peptide linking' y GLUTAMINE                                                                   ? 'C5 H10 N2 O3'
146.144
`
	answers := []int{4, 3, 6, 1}
	scnr := NewCmmtScanner(bytes.NewReader([]byte(ss)), '#')
	retIn := make([][]byte, 0, 40)
	ndx := 0
	for scnr.Cscan() && scnr.Cbytes() != nil {
		tt, err := SplitCifLine(scnr.Cbytes(), retIn)
		if err != nil {
			t.Error("Splitting messy string", err)
		}
		if len(tt) != answers[ndx] {
			t.Error("wrong number of entries, got", len(tt))
		}
		ndx++
	}
}

func TestCmmtscanner(t *testing.T) {
	var ss = []twostring{
		{"some words", "some words"},
		{"#beforecomment#after", ""},
		{"with'quote", "with'quote"},
		{"#hash'#inquote", ""},
		{"hash'#inquote'before#after", "hash'#inquote'before#after"},
		{"ab\"#keep", "ab\"#keep"},
		{"ab\"#keep\"c#", "ab\"#keep\"c#"},
		{"", ""},
	}
	for _, x := range ss {
		scnr := NewCmmtScanner(bytes.NewReader([]byte(x.in)), '#')
		scnr.Cscan()
		b := scnr.Cbytes()
		if string(b) != x.out {
			t.Errorf("Expected\"%s\" got \"%s\"\n", x.out, string(b))
		}
	}
}

type sb []string
type strSlice struct {
	in  string
	out sb
}

func TestSplitCifLine(t *testing.T) {
	var ss = []strSlice{
		{"", sb{""}},
		{"a\"b\"", sb{"a\"b\""}},
		{`b"b"b"b`, sb{"b\"b\"b\"b"}},
		{`b"b"b"b"`, sb{"b\"b\"b\"b\""}},
		{"a b c ", sb{"a", "b", "c"}},
		{"c", sb{"c"}},
		{`aa'aa`, sb{"aa'aa"}},
	}
	scratch := make([][]byte, 3)

	for _, x := range ss {
		tt, err := SplitCifLine([]byte(x.in), scratch)
		if err != nil {
			t.Errorf("Splitting x.in gave error %s\n", err)
		}
		for i, tOut := range tt {
			if string(tOut) != x.out[i] {
				t.Errorf("Splitting <%s> broken, got ", x.in)
				for _, x := range tOut {
					t.Errorf(" <%s>", string(x))
				}
			}
		}
	}
}

func TestSplitCifLine2(t *testing.T) {
	ss := `#This is my test string.
word1 word2
"word1"  	word2
"word1"word2
word1 "word2"
# and a comment in the middle of the file
# and the next should give us errors
   word1 word2

`
	scnr := NewCmmtScanner(bytes.NewReader([]byte(ss)), '#')
	var nOk, nBroken int
	scratch := make([][]byte, 0)
	for scnr.Cscan() && scnr.Cbytes() != nil {
		tt, err := SplitCifLine(scnr.Cbytes(), scratch)
		if err != nil {
			nBroken++
		} else {
			nOk++
			if len(tt) != 2 {
				t.Errorf("\"%s\" want %d items, got %d", string(scnr.Bytes()), 2, len(tt))
			}
			if string(tt[0]) != "word1" || string(tt[1]) != "word2" {
				t.Errorf("string \"%s\" not broken down correctly", string(scnr.Bytes()))
			}
		}
		scratch = scratch[:0]
	}
	if nBroken != 1 {
		t.Errorf("Expected one error, got %d\n", nBroken)
	}
}

// TestBroken checks that we do get an error on silly strings.
func TestBroken(t *testing.T) {
	ss := []string{
		`'word1'"word2"`,
		`word1 "word2`,
	}
	scratch := make([][]byte, 0)
	for _, s := range ss {
		_, err := SplitCifLine([]byte(s), scratch)
		if err == nil {
			t.Error("Expected an error on string", s)
		}
	}
}

func TestFields(t *testing.T) {
	type ftest struct {
		s string
		a []string
	}
	var tests = []ftest{
		{" 1", []string{"1"}},
		{"", []string{}},
		{" ", []string{}},
		{" 1", []string{"1"}},
		{"1", []string{"1"}},
		{" 1 ", []string{"1"}},
		{"1 2", []string{"1", "2"}},
		{" 1 2", []string{"1", "2"}},
		{"1   2", []string{"1", "2"}},
		{"1   2 ", []string{"1", "2"}},
		{"1   2    ", []string{"1", "2"}},
		{"12 34", []string{"12", "34"}},
		{"12 34 ", []string{"12", "34"}},
		{"1 2 3 4", []string{"1", "2", "3", "4"}},
		{"1 2 3 4 ", []string{"1", "2", "3", "4"}},
		{"1  2 3 4 ", []string{"1", "2", "3", "4"}},
		{"ATOM 1805  O \"O3'\" . DG A 1 10 ? -16.616 0.276   -4.686  1.00 0.00 ?  299 DG A \"O3'\"  2",
			[]string{"ATOM", "1805", "O", "\"O3'\"", ".", "DG", "A", "1", "10", "?", "-16.616", "0.276", "-4.686", "1.00", "0.00", "?", "299", "DG", "A", "\"O3'\"", "2"}},
	}

	for _, tt := range tests {
		var scrtch [40]BSlice
		ret := Fields([]byte(tt.s), scrtch[:])
		if len(ret) != len(tt.a) {
			t.Errorf("Wanted %d fields, got %d, string '%s'", len(tt.a), len(ret), tt.s)
		}
		for i, a := range tt.a {
			if string(ret[i]) != a {
				t.Errorf("fields mismatch want '%s' got '%s'", tt.a[i], ret[i])
			}
		}
	}
}

func TestFieldsLong(t *testing.T) {
	const small = 5
	var scrtch [small]BSlice
	in := BSlice(" 1 2 3 4 5 6 7 8 9 0 ")
	out := Fields(in, scrtch[:])
	if len(out) != small {
		t.Error("Problem when scratch array is too small")
	}
}
