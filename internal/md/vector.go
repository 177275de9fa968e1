package md

// Vector4 is a 4-wide tuple used for positions, velocities and forces.
// W is unused by the physics; it keeps host arrays layout-compatible with
// the device-side float4 mirrors.
type Vector4 struct {
	X, Y, Z, W float64
}

func (v Vector4) Add(o Vector4) Vector4 {
	return Vector4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, 0}
}

func (v Vector4) Sub(o Vector4) Vector4 {
	return Vector4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, 0}
}

func (v Vector4) Scale(f float64) Vector4 {
	return Vector4{v.X * f, v.Y * f, v.Z * f, 0}
}

// Norm2 returns the squared length over the three spatial components.
func (v Vector4) Norm2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}
