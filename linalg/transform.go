package linalg

// LookAt returns the model-view matrix of a camera at eye looking at center.
// View-space +z points from eye towards center, so depth grows with distance.
func LookAt(eye, center, up Vec3d) Mat4d {
	z := center.Sub(eye).Normalize()
	x := z.Cross(up).Normalize()
	y := x.Cross(z).Normalize()

	translate := Identity4[float64]()
	translate[0][3] = -eye[0]
	translate[1][3] = -eye[1]
	translate[2][3] = -eye[2]

	rotate := Mat4d{
		x.Embed(0),
		y.Embed(0),
		z.Embed(0),
		{0, 0, 0, 1},
	}
	return rotate.Mul(translate)
}

// Viewport maps normalized device coordinates [-1, 1] onto the pixel
// rectangle at (x, y) of size w×h. Depth and w pass through.
func Viewport(x, y, w, h int) Mat4d {
	fx, fy, fw, fh := float64(x), float64(y), float64(w), float64(h)

	m := Identity4[float64]()
	m[0][0], m[0][3] = fw/2, fw/2+fx
	m[1][1], m[1][3] = fh/2, fh/2+fy
	return m
}

// Pinhole returns a perspective projection with the given focal length:
// w' = 1 + z/focal.
func Pinhole(focal float64) Mat4d {
	m := Identity4[float64]()
	m[3][2] = 1 / focal
	return m
}
