// Package transform provides the value types for local placement of scene
// objects: position and scale vectors plus rotation quaternions.
package transform

// Vec3 is a three-component vector used for positions and scales.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use Identity for "no rotation".
type Quat struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
	W float64 `yaml:"w" json:"w"`
}

// Zero returns the zero vector.
func Zero() Vec3 {
	return Vec3{}
}

// One returns the unit scale vector (1, 1, 1).
func One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

// Identity returns the identity rotation.
func Identity() Quat {
	return Quat{W: 1}
}

// IsZero reports whether q is the zero quaternion. Callers use this to
// substitute the identity rotation when a rotation was left unset.
func (q Quat) IsZero() bool {
	return q == Quat{}
}
