package world

import (
	"math"

	"github.com/fkerimk/Xyloia/shared/util"
)

// RaycastHit descreve o voxel atingido por um raio.
type RaycastHit struct {
	X, Y, Z  int32       // Voxel atingido (coordenadas de mundo)
	Normal   util.Offset // Normal da face atravessada
	Point    util.Vector3
	Distance float32
}

// Raycast caminha o raio voxel a voxel (DDA) até atingir um bloco sólido ou
// esgotar maxDist. Retorna o voxel atingido e a normal da face de entrada.
func (w *World) Raycast(ray util.Ray, maxDist float32) (RaycastHit, bool) {
	dir := ray.Direction
	length := float32(math.Sqrt(float64(dir.X*dir.X + dir.Y*dir.Y + dir.Z*dir.Z)))
	if length == 0 {
		return RaycastHit{}, false
	}
	dir.X /= length
	dir.Y /= length
	dir.Z /= length

	x := int32(math.Floor(float64(ray.Origin.X)))
	y := int32(math.Floor(float64(ray.Origin.Y)))
	z := int32(math.Floor(float64(ray.Origin.Z)))

	stepOf := func(d float32) int32 {
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
		return 0
	}
	stepX, stepY, stepZ := stepOf(dir.X), stepOf(dir.Y), stepOf(dir.Z)

	next := func(origin float32, cell int32, step int32, d float32) float32 {
		if step == 0 {
			return float32(math.Inf(1))
		}
		var boundary float32
		if step > 0 {
			boundary = float32(cell + 1)
		} else {
			boundary = float32(cell)
		}
		return (boundary - origin) / d
	}
	tMaxX := next(ray.Origin.X, x, stepX, dir.X)
	tMaxY := next(ray.Origin.Y, y, stepY, dir.Y)
	tMaxZ := next(ray.Origin.Z, z, stepZ, dir.Z)

	delta := func(step int32, d float32) float32 {
		if step == 0 {
			return float32(math.Inf(1))
		}
		return float32(math.Abs(float64(1 / d)))
	}
	tDeltaX := delta(stepX, dir.X)
	tDeltaY := delta(stepY, dir.Y)
	tDeltaZ := delta(stepZ, dir.Z)

	var normal util.Offset
	t := float32(0)

	for t <= maxDist {
		b := w.GetBlock(x, y, z)
		if !b.IsAir() && w.reg.IsSolid(b.ID) {
			return RaycastHit{
				X: x, Y: y, Z: z,
				Normal: normal,
				Point: util.Vector3{
					X: ray.Origin.X + dir.X*t,
					Y: ray.Origin.Y + dir.Y*t,
					Z: ray.Origin.Z + dir.Z*t,
				},
				Distance: t,
			}, true
		}

		switch {
		case tMaxX <= tMaxY && tMaxX <= tMaxZ:
			x += stepX
			t = tMaxX
			tMaxX += tDeltaX
			normal = util.Offset{X: -stepX}
		case tMaxY <= tMaxZ:
			y += stepY
			t = tMaxY
			tMaxY += tDeltaY
			normal = util.Offset{Y: -stepY}
		default:
			z += stepZ
			t = tMaxZ
			tMaxZ += tDeltaZ
			normal = util.Offset{Z: -stepZ}
		}
	}

	return RaycastHit{}, false
}
