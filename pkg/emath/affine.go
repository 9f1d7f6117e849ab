package emath

// Some basic affine transformations, used to scale composites for display

import (
	"fmt"

	"golang.org/x/image/math/f64" // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

// Cut-n-pasted from image@0.7.0/draw/scale:matMul
func (p Aff3) Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

func Identity() Aff3 {
	return Aff3{1, 0, 0, 0, 1, 0}
}

func (m1 Aff3) Translate(tx, ty float64) Aff3 {
	return m1.Mult(Aff3{1, 0, tx, 0, 1, ty})
}

func (m1 Aff3) Scale(sx, sy float64) Aff3 {
	return m1.Mult(Aff3{sx, 0, 0, 0, sy, 0})
}

func (m Aff3) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f; %.4f %.4f %.4f]", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Linear RGB triples
type Vec3 f64.Vec3

func (v Vec3) String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }
func (v Vec3) Add(w Vec3) Vec3      { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

func (v *Vec3) FloorAt(min float64) {
	if v[0] < min {
		v[0] = min
	}
	if v[1] < min {
		v[1] = min
	}
	if v[2] < min {
		v[2] = min
	}
}

func (v *Vec3) CeilingAt(max float64) {
	if v[0] > max {
		v[0] = max
	}
	if v[1] > max {
		v[1] = max
	}
	if v[2] > max {
		v[2] = max
	}
}
