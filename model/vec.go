package model

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) DistanceSq(o Vec3) float64 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Lerp returns v + (o - v) * alpha.
func (v Vec3) Lerp(o Vec3, alpha float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*alpha,
		v.Y + (o.Y-v.Y)*alpha,
		v.Z + (o.Z-v.Z)*alpha,
	}
}
