package bone

// Residue says which residue of a step an atom belongs to.
type Residue int

const (
	FirstRes Residue = iota
	SecondRes
)

// QuadAtom is an atom name and the residue it comes from.
type QuadAtom struct {
	Name string
	Res  Residue
}

// Quad is four atoms defining one torsion.
type Quad [4]QuadAtom

// Backbone torsions, in the order they appear in BackboneQuads.
const (
	Delta1 = iota
	Epsilon1
	Zeta1
	Alpha2
	Beta2
	Gamma2
	Delta2
	NBackboneTorsion
)

// BackboneQuads holds the seven backbone torsions of a step.
type BackboneQuads [NBackboneTorsion]Quad

const (
	nChainFirst  = 4 // C5' C4' C3' O3'
	nChainSecond = 6 // P O5' C5' C4' C3' O3'
	nChain       = nChainFirst + nChainSecond
)

// stdQuads is what buildQuads gives for two standard bones.
var stdQuads = BackboneQuads{
	{{"C5'", FirstRes}, {"C4'", FirstRes}, {"C3'", FirstRes}, {"O3'", FirstRes}},
	{{"C4'", FirstRes}, {"C3'", FirstRes}, {"O3'", FirstRes}, {"P", SecondRes}},
	{{"C3'", FirstRes}, {"O3'", FirstRes}, {"P", SecondRes}, {"O5'", SecondRes}},
	{{"O3'", FirstRes}, {"P", SecondRes}, {"O5'", SecondRes}, {"C5'", SecondRes}},
	{{"P", SecondRes}, {"O5'", SecondRes}, {"C5'", SecondRes}, {"C4'", SecondRes}},
	{{"O5'", SecondRes}, {"C5'", SecondRes}, {"C4'", SecondRes}, {"C3'", SecondRes}},
	{{"C5'", SecondRes}, {"C4'", SecondRes}, {"C3'", SecondRes}, {"O3'", SecondRes}},
}

// Quads returns the backbone torsion atoms for a step whose first
// residue has bone b1 and second residue b2.
func Quads(b1, b2 *Bone) BackboneQuads {
	if b1.StdBackbone && b2.StdBackbone {
		return stdQuads
	}
	return buildQuads(b1, b2)
}

// buildQuads treats the torsion chain of the second residue followed by
// that of the first as a ring and slides a window of four along it,
// starting at the first residue's C5'. Once the window has gone round
// the end of the ring, it is reading atoms of the second residue.
// Nothing is cached. The work is a few dozen assignments.
func buildQuads(b1, b2 *Bone) BackboneQuads {
	var ring [nChain]string
	copy(ring[:nChainSecond], b2.Second[:nChainSecond])
	copy(ring[nChainSecond:], b1.First[:nChainFirst])

	var q BackboneQuads
	for w := range q {
		for k := range q[w] {
			pos := nChainSecond + w + k
			res := FirstRes
			if pos >= nChain {
				res = SecondRes
			}
			q[w][k] = QuadAtom{Name: ring[pos%nChain], Res: res}
		}
	}
	return q
}
