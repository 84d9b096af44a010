// Calculate some geometries, lengths and angles.
// Everything is in float64 and radians. Nothing here checks for NaN.
// The callers decide whether NaN means broken input.

package geom

import (
	"math"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

const (
	Rad2Deg = 180 / math.Pi
	Deg2Rad = math.Pi / 180
)

// Dist gets the distance between two points.
func Dist(x1, x2 cmmn.Xyz) float64 { return x1.Dist(x2) }

// Angle takes three points and returns the angle at b.
func Angle(a, b, c cmmn.Xyz) float64 {
	x1 := a.Sub(b)
	x2 := c.Sub(b)
	cosalpha := x1.Dot(x2) / (x1.Len() * x2.Len())
	if cosalpha > 1 && cosalpha < 1.01 { // numerical noise
		return 0.0
	}
	if cosalpha < -1 && cosalpha > -1.01 {
		return math.Pi
	}
	return math.Acos(cosalpha) // NaN for zero length vectors
}

// Dihedral takes four points and returns the dihedral angle in (-pi, pi].
// Degenerate input (coincident points, three points on a line) gives NaN.
// atan2 keeps full precision near 0 and pi, where acos does not.
func Dihedral(ii, jj, kk, ll cmmn.Xyz) float64 {
	b1 := jj.Sub(ii)
	b2 := kk.Sub(jj)
	b3 := ll.Sub(kk)
	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	if n1.Len2() == 0 || n2.Len2() == 0 {
		return math.NaN()
	}
	tau := math.Atan2(b2.Len()*b1.Dot(n2), n1.Dot(n2))
	if tau == -math.Pi {
		return math.Pi
	}
	return tau
}

// WrapAngle puts an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return math.NaN()
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff is the signed smallest difference a - b, going around the
// circle if that is shorter. The result is in (-pi, pi].
func AngleDiff(a, b float64) float64 { return WrapAngle(a - b) }

// AngleDiffDeg is AngleDiff, but in and out in degrees.
func AngleDiffDeg(a, b float64) float64 {
	return AngleDiff(a*Deg2Rad, b*Deg2Rad) * Rad2Deg
}
