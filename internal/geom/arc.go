// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// ArcTo appends an SVG elliptical arc from the current point to (x, y),
// converted to cubic Bezier segments of at most 90 degrees each.
//
// Parameters follow the SVG "A" command: radii rx and ry, x-axis rotation
// in degrees, and the large-arc and sweep flags.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	from := p.current
	to := Pt(x, y)
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(x, y)
		return
	}

	phi := rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Step 1: compute (x1', y1')
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Ensure radii are large enough.
	if lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: compute (cx', cy')
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1 / ry
	cyp := -coef * ry * x1 / rx

	// Step 3: compute (cx, cy)
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	// Step 4: start angle and sweep
	theta1 := vectorAngle(1, 0, (x1-cxp)/rx, (y1-cyp)/ry)
	delta := vectorAngle((x1-cxp)/rx, (y1-cyp)/ry, (-x1-cxp)/rx, (-y1-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	segments = max(segments, 1)
	step := delta / float64(segments)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	ellipse := func(theta float64) (Point, Point) {
		sin, cos := math.Sincos(theta)
		pt := Point{
			X: cx + rx*cos*cosPhi - ry*sin*sinPhi,
			Y: cy + rx*cos*sinPhi + ry*sin*cosPhi,
		}
		deriv := Point{
			X: -rx*sin*cosPhi - ry*cos*sinPhi,
			Y: -rx*sin*sinPhi + ry*cos*cosPhi,
		}
		return pt, deriv
	}

	theta := theta1
	start, d1 := ellipse(theta)
	for i := 0; i < segments; i++ {
		next := theta + step
		end, d2 := ellipse(next)
		if i == segments-1 {
			end = to
		}
		c1 := start.Add(d1.Mul(alpha))
		c2 := end.Sub(d2.Mul(alpha))
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		start, d1, theta = end, d2, next
	}
}

// vectorAngle returns the signed angle from (ux, uy) to (vx, vy).
func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
