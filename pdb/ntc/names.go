package ntc

import "slices"

// Names lists the 96 NtC classes in the usual order.
var Names = []string{
	"AA00", "AA01", "AA02", "AA03", "AA04", "AA05", "AA06", "AA07", "AA08", "AA09",
	"AA10", "AA11", "AA12", "AA13",
	"AB01", "AB02", "AB03", "AB04", "AB05",
	"BA01", "BA05", "BA08", "BA09", "BA10", "BA13", "BA16", "BA17",
	"BB00", "BB01", "BB02", "BB03", "BB04", "BB05", "BB07", "BB08", "BB10", "BB11",
	"BB12", "BB13", "BB14", "BB15", "BB16", "BB17", "BB20",
	"IC01", "IC02", "IC03", "IC04", "IC05", "IC06", "IC07",
	"OP01", "OP02", "OP03", "OP04", "OP05", "OP06", "OP07", "OP08", "OP09", "OP10",
	"OP11", "OP12", "OP13", "OP14", "OP15", "OP16", "OP17", "OP18", "OP19", "OP20",
	"OP21", "OP22", "OP23", "OP24", "OP25", "OP26", "OP27", "OP28", "OP29", "OP30",
	"OP31", "OPS1", "OP1S",
	"AAS1", "AB1S", "AB2S",
	"BB1S", "BB2S", "BBS1",
	"ZZ01", "ZZ02", "ZZ1S", "ZZ2S", "ZZS1", "ZZS2",
}

// IsName says if s is one of the NtC classes.
func IsName(s string) bool { return slices.Contains(Names, s) }
