package transform

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidProjection is the cause of the panic raised by Orthographic and Perspective
// when called with inverted or degenerate bounds.
var ErrInvalidProjection = errors.New("invalid projection parameters")

// WorldUp is the +Y axis used as the up hint for light views.
var WorldUp = mgl32.Vec3{0, 1, 0}

// ValidateOrthographic reports whether the box bounds can build an orthographic matrix.
func ValidateOrthographic(right, left, top, bottom, near, far float32) error {
	if !(near < far) {
		return fmt.Errorf("orthographic: near %v >= far %v: %w", near, far, ErrInvalidProjection)
	}
	if !(left < right) {
		return fmt.Errorf("orthographic: left %v >= right %v: %w", left, right, ErrInvalidProjection)
	}
	if !(bottom < top) {
		return fmt.Errorf("orthographic: bottom %v >= top %v: %w", bottom, top, ErrInvalidProjection)
	}
	return nil
}

// ValidatePerspective reports whether the parameters can build a perspective matrix.
func ValidatePerspective(fovDeg, aspect, near, far float32) error {
	if !(aspect > 0) {
		return fmt.Errorf("perspective: aspect %v <= 0: %w", aspect, ErrInvalidProjection)
	}
	if !(near < far) {
		return fmt.Errorf("perspective: near %v >= far %v: %w", near, far, ErrInvalidProjection)
	}
	return nil
}

// Orthographic maps the box to the canonical clip volume. Callers always pass a symmetric box
// (left = -right, bottom = -top), so only right, top, near and far enter the matrix.
// Panics when the bounds are inverted.
func Orthographic(right, left, top, bottom, near, far float32) mgl32.Mat4 {
	if err := ValidateOrthographic(right, left, top, bottom, near, far); err != nil {
		panic(err)
	}
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1 / right, 0, 0, 0},
		mgl32.Vec4{0, 1 / top, 0, 0},
		mgl32.Vec4{0, 0, -2 / (far - near), -(far + near) / (far - near)},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// Perspective builds a right-handed projection with a vertical field of view in degrees.
// Panics on a non-positive aspect or inverted near/far.
func Perspective(fovDeg, aspect, near, far float32) mgl32.Mat4 {
	if err := ValidatePerspective(fovDeg, aspect, near, far); err != nil {
		panic(err)
	}
	tanHalf := math32.Tan(mgl32.DegToRad(fovDeg) / 2)
	var m mgl32.Mat4
	m[0] = 1 / (aspect * tanHalf)
	m[5] = 1 / tanHalf
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -(2 * far * near) / (far - near)
	return m
}

// LookAt builds a view matrix for a camera at eye looking at target.
// forward and up must not be parallel.
func LookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up.Normalize()).Normalize()
	u := s.Cross(f)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{s.X(), s.Y(), s.Z(), -s.Dot(eye)},
		mgl32.Vec4{u.X(), u.Y(), u.Z(), -u.Dot(eye)},
		mgl32.Vec4{-f.X(), -f.Y(), -f.Z(), f.Dot(eye)},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// Translate returns a pure translation.
func Translate(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v.X(), v.Y(), v.Z())
}

// RotateY rotates about the vertical axis.
func RotateY(radians float32) mgl32.Mat4 {
	sin, cos := math32.Sincos(radians)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{cos, 0, sin, 0},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{-sin, 0, cos, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// RotateX rotates about the horizontal X axis.
func RotateX(radians float32) mgl32.Mat4 {
	sin, cos := math32.Sincos(radians)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{0, cos, -sin, 0},
		mgl32.Vec4{0, sin, cos, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// RotateAbout spins around the vertical axis through pivot:
// translate pivot to origin, rotate, translate back.
func RotateAbout(pivot mgl32.Vec3, radians float32) mgl32.Mat4 {
	toOrigin := Translate(pivot.Mul(-1))
	back := Translate(pivot)
	return back.Mul4(RotateY(radians)).Mul4(toOrigin)
}

// Point applies m to p as a position (w = 1).
func Point(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Origin returns the translation m applies to the origin.
func Origin(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
