package bone

// Modified residues. Names follow the wwPDB chemical component
// dictionary. Most keep the atom names of their parent nucleotide and
// only need to be listed. The rest are spelled out in irregular.

var purineLike = [...]string{
	"12A", "1AP", "1MA", "1MG", "2DA", "2EG", "2MA", "2MG", "2PR", "3DA",
	"6IA", "6MZ", "6OG", "7MG", "8AN", "8MG", "8OG", "A23", "A2L", "A2M",
	"A44", "A5O", "ADP", "AMP", "AS", "ATP", "AVC", "BGM", "DDG", "DGP",
	"DI", "E1X", "EDA", "G25", "G2L", "G48", "G7M", "GDP", "GFL", "GH3",
	"GMP", "GN7", "GS", "GTP", "I", "IG", "LCA", "LCG", "M2G", "MA6",
	"MAD", "MIA", "MRG", "N6G", "OMG", "P5P", "PGP", "PPU", "QUO", "RIA",
	"SRA", "T6A", "TGP", "XAD", "XG", "YG", "YYG", "ZAD", "0A", "0G",
}

var pyrimidineLike = [...]string{
	"1CC", "2MU", "4OC", "4SU", "5BU", "5CM", "5FC", "5FU", "5HC", "5IU",
	"5MC", "5MU", "5NC", "5PC", "70U", "BRU", "C2L", "C43", "C5P", "CAR",
	"CBR", "CBV", "CCC", "CFL", "CSL", "CTP", "D3T", "DCP", "DNR", "DOC",
	"DU", "H2U", "I5C", "LCC", "MCY", "MMT", "MNU", "OMC", "OMU", "PST",
	"RSQ", "SUR", "T32", "TAF", "TLN", "TTP", "U2L", "U34", "U5P", "U8U",
	"UAR", "UFT", "UMS", "UR3", "US1", "UTP", "0C", "0U", "ZDU", "TDY",
}

// hexitol builds the bone for a hexitol nucleic acid residue. The
// phosphates sit on O6' and O4', the base on C2'.
func hexitol(name string, std *Bone) Bone {
	n, b1 := std.Base[0], std.Base[1]
	return Bone{
		Name:        name,
		First:       [NFirst]string{"C6'", "C5'", "C4'", "O4'", "C1'", "C2'", n},
		Second:      [NSecond]string{"P", "O6'", "C6'", "C5'", "C4'", "O4'", "C1'", "C2'", n},
		Base:        std.Base,
		BaseQuad:    [4]string{"C1'", "C2'", n, b1},
		StdBackbone: false,
		StdBase:     true,
		kind:        std.kind,
	}
}

// cGlycoside is for pseudouridine and relatives, where the base is
// bonded through its C5.
func cGlycoside(name string) Bone {
	return Bone{
		Name:        name,
		First:       [NFirst]string{"C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "C5"},
		Second:      [NSecond]string{"P", "O5'", "C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "C5"},
		Base:        [2]string{"C5", "C4"},
		BaseQuad:    [4]string{"O4'", "C1'", "C5", "C4"},
		StdBackbone: true,
		StdBase:     false,
		kind:        NonStandardBase,
	}
}

// fourThio replaces the ring oxygen of a standard sugar with sulphur.
func fourThio(name string, std *Bone) Bone {
	b := *std
	b.Name = name
	b.First[FirstRing] = "S4'"
	b.Second[SecondRing] = "S4'"
	b.BaseQuad[0] = "S4'"
	b.StdBackbone = false
	return b
}

var irregular = [...]Bone{
	cGlycoside("PSU"),
	cGlycoside("FHU"),
	cGlycoside("B8H"),
	hexitol("6HA", &stdPurine),
	hexitol("6HG", &stdPurine),
	hexitol("6HC", &stdPyrimidine),
	hexitol("6HT", &stdPyrimidine),
	fourThio("SDG", &stdPurine),
	fourThio("SDA", &stdPurine),
	fourThio("S4C", &stdPyrimidine),
	fourThio("TSU", &stdPyrimidine),
}

// modified maps a residue name to its bone. It is filled once, here,
// and only read afterwards.
var modified = buildTable()

func buildTable() map[string]*Bone {
	m := make(map[string]*Bone, len(purineLike)+len(pyrimidineLike)+len(irregular))
	add := func(names []string, std *Bone) {
		for _, name := range names {
			b := *std
			b.Name = name
			m[name] = &b
		}
	}
	add(purineLike[:], &stdPurine)
	add(pyrimidineLike[:], &stdPyrimidine)
	for i := range irregular {
		m[irregular[i].Name] = &irregular[i]
	}
	return m
}

// NModified says how many modified residues we know about.
func NModified() int { return len(modified) }
