package stepgeom

var (
	ParseLevel = parseLevel
	OpenOut    = openOut
	Adjacent   = adjacent
	ReadAll    = readAll
	WriteOut   = writeOut
	WriteClose = writeClose
)
