package cmmn

// Error is the kind of failure. Callers should test with errors.Is,
// since most functions wrap these with some detail about where the
// problem was.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidArgument  Error = "invalid argument"
	ErrMismatchingSizes Error = "mismatching sizes"
	ErrMissingAtoms     Error = "missing atoms"
	ErrMismatchingData  Error = "mismatching data"
	ErrMultipleAltIds   Error = "multiple alternate positions"
	ErrBadData          Error = "bad data" // A calculation gave NaN
	ErrUnknownResidue   Error = "unknown residue"
)
