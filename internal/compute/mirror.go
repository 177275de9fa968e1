package compute

import "github.com/san-kum/argonmd/internal/md"

// Host arrays are float64; the device mirrors are float32 vec4. These
// conversions run around every kernel invocation, so the host stays the
// source of truth at call boundaries.

func packVec4(vs []md.Vector4, out []float32) []float32 {
	if len(out) != len(vs)*4 {
		out = make([]float32, len(vs)*4)
	}
	for i, v := range vs {
		out[i*4] = float32(v.X)
		out[i*4+1] = float32(v.Y)
		out[i*4+2] = float32(v.Z)
		out[i*4+3] = float32(v.W)
	}
	return out
}

func unpackVec4(in []float32, vs []md.Vector4) {
	for i := range vs {
		vs[i] = md.Vector4{
			X: float64(in[i*4]),
			Y: float64(in[i*4+1]),
			Z: float64(in[i*4+2]),
			W: float64(in[i*4+3]),
		}
	}
}
