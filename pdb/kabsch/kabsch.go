/*
Package kabsch superposes one set of points onto another with the
Kabsch algorithm and gives the RMSD of the fit.

A brief, high-level overview:

Move both sets so their centroids are at the origin. With the centred
sets as 3xN matrices P (what is moved) and Q (the target), form the
covariance matrix H = P(Q^T).

Compute the singular value decomposition H = U S (V^T).

Compute d = sign(det(V (U^T))). If d is negative, the best orthogonal
matrix is a reflection and we have to flip the last axis to get a
proper rotation.

The rotation is R = V diag(1, 1, d) (U^T). Apply it to P and put the
result at the centroid of Q.

The two point sets must be the same length and in corresponding order.
*/
package kabsch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// Centroid is the average position. No points gives the origin.
func Centroid(pts []cmmn.Xyz) cmmn.Xyz {
	var c cmmn.Xyz
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts)))
}

// RMSD is the root mean square distance between corresponding points,
// without any fitting. Two empty sets have an RMSD of zero.
func RMSD(a, b []cmmn.Xyz) (float64, error) {
	if len(a) != len(b) {
		return 0, sizeErr(len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	var sum float64
	for i := range a {
		sum += a[i].Sub(b[i]).Len2()
	}
	return math.Sqrt(sum / float64(len(a))), nil
}

func sizeErr(n1, n2 int) error {
	return fmt.Errorf("%w: %d and %d points", cmmn.ErrMismatchingSizes, n1, n2)
}

// centre returns the points moved so their centroid is at the origin,
// as a 3xN matrix.
func centre(pts []cmmn.Xyz, c cmmn.Xyz) *mat.Dense {
	n := len(pts)
	m := mat.NewDense(3, n, nil)
	for i, p := range pts {
		m.Set(0, i, p.X-c.X)
		m.Set(1, i, p.Y-c.Y)
		m.Set(2, i, p.Z-c.Z)
	}
	return m
}

// fit holds the parts of a superposition that the callers need.
// rot is 3x3. pWhat and qOnto are the centred points, 3xN.
type fit struct {
	rot   *mat.Dense
	cWhat cmmn.Xyz
	cOnto cmmn.Xyz
	pWhat *mat.Dense
	qOnto *mat.Dense
	nPts  int
}

// kabsch works out the rotation taking what onto onto. The caller has
// checked that the sizes match and are not zero.
func kabsch(what, onto []cmmn.Xyz) (*fit, error) {
	f := &fit{cWhat: Centroid(what), cOnto: Centroid(onto), nPts: len(what)}
	f.pWhat = centre(what, f.cWhat)
	f.qOnto = centre(onto, f.cOnto)

	var h mat.Dense
	h.Mul(f.pWhat, f.qOnto.T())

	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		return nil, fmt.Errorf("%w: singular value decomposition failed", cmmn.ErrBadData)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1
	}
	diag := mat.NewDiagDense(3, []float64{1, 1, d})
	var vd mat.Dense
	vd.Mul(&v, diag)
	f.rot = mat.NewDense(3, 3, nil)
	f.rot.Mul(&vd, u.T())
	return f, nil
}

// rotated applies the rotation to the centred points of what.
func (f *fit) rotated() *mat.Dense {
	var r mat.Dense
	r.Mul(f.rot, f.pWhat)
	return &r
}

// rmsd of the rotated points against the centred target.
func (f *fit) rmsd(r *mat.Dense) (float64, error) {
	var sum float64
	for i := 0; i < f.nPts; i++ {
		for j := 0; j < 3; j++ {
			d := r.At(j, i) - f.qOnto.At(j, i)
			sum += d * d
		}
	}
	rmsd := math.Sqrt(sum / float64(f.nPts))
	if math.IsNaN(rmsd) {
		return rmsd, fmt.Errorf("%w: RMSD is NaN", cmmn.ErrBadData)
	}
	return rmsd, nil
}

// Superpose moves what, in place, to best fit onto and returns the
// RMSD after the fit. The moved points end up around the centroid of
// onto. Nothing happens to empty sets.
func Superpose(what, onto []cmmn.Xyz) (float64, error) {
	if len(what) != len(onto) {
		return 0, sizeErr(len(what), len(onto))
	}
	if len(what) == 0 {
		return 0, nil
	}
	f, err := kabsch(what, onto)
	if err != nil {
		return 0, err
	}
	r := f.rotated()
	rmsd, err := f.rmsd(r)
	if err != nil {
		return rmsd, err
	}
	for i := range what {
		what[i] = cmmn.Xyz{
			X: r.At(0, i) + f.cOnto.X,
			Y: r.At(1, i) + f.cOnto.Y,
			Z: r.At(2, i) + f.cOnto.Z,
		}
	}
	return rmsd, nil
}

// SuperposeStructure is Superpose for the coordinates of two structures.
// Only the coordinates of what change.
func SuperposeStructure(what, onto cmmn.Structure) (float64, error) {
	xyz := what.Coords()
	rmsd, err := Superpose(xyz, onto.Coords())
	if err != nil {
		return rmsd, err
	}
	return rmsd, what.SetCoords(xyz)
}

// SuperpositionMatrix returns the 4x4 homogeneous transform which
// takes what onto onto. Neither set is changed. It is the product
// of a translation to the origin, the rotation and a translation to
// the target centroid.
func SuperpositionMatrix(what, onto []cmmn.Xyz) (*mat.Dense, error) {
	if len(what) != len(onto) {
		return nil, sizeErr(len(what), len(onto))
	}
	if len(what) == 0 {
		return nil, fmt.Errorf("%w: no points to superpose", cmmn.ErrInvalidArgument)
	}
	f, err := kabsch(what, onto)
	if err != nil {
		return nil, err
	}
	toOrigin := translation(f.cWhat.Scale(-1))
	rot := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot.Set(i, j, f.rot.At(i, j))
		}
	}
	rot.Set(3, 3, 1)
	toTarget := translation(f.cOnto)

	var tmp, m mat.Dense
	tmp.Mul(rot, toOrigin)
	m.Mul(toTarget, &tmp)
	return &m, nil
}

func translation(t cmmn.Xyz) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	})
}

// Apply transforms points in place with a 4x4 homogeneous matrix, such
// as the one from SuperpositionMatrix.
func Apply(m mat.Matrix, pts []cmmn.Xyz) error {
	if r, c := m.Dims(); r != 4 || c != 4 {
		return fmt.Errorf("%w: transform is %dx%d, not 4x4", cmmn.ErrInvalidArgument, r, c)
	}
	for i, p := range pts {
		pts[i] = cmmn.Xyz{
			X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3),
			Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3),
			Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3),
		}
	}
	return nil
}
