package camera

import (
	"math"

	"github.com/fkerimk/Xyloia/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller gerencia uma câmera de voo livre em primeira pessoa.
// Yaw/pitch pelo mouse, WASD relativo à direção do olhar.
type Controller struct {
	RLCamera rl.Camera3D

	Yaw   float32 // Radianos, rotação em torno de Y
	Pitch float32 // Radianos, elevação

	MoveSpeed   float32
	SprintMult  float32
	Sensitivity float32

	Position mgl32.Vec3
}

// New cria um controlador posicionado em pos, olhando para o horizonte.
func New(pos rl.Vector3, yawDeg, pitchDeg float32) *Controller {
	c := &Controller{
		Yaw:         yawDeg * rl.Deg2rad,
		Pitch:       pitchDeg * rl.Deg2rad,
		MoveSpeed:   24.0,
		SprintMult:  4.0,
		Sensitivity: 0.0022,
		Position:    mgl32.Vec3{pos.X, pos.Y, pos.Z},
	}

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       70.0,
		Projection: rl.CameraPerspective,
	}
	c.refresh()
	return c
}

// Forward retorna o vetor de direção do olhar (normalizado).
func (c *Controller) Forward() mgl32.Vec3 {
	cosP := float32(math.Cos(float64(c.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))) * cosP,
		float32(math.Sin(float64(c.Pitch))),
		float32(math.Sin(float64(c.Yaw))) * cosP,
	}
}

// Ray retorna um raio partindo da câmera na direção do olhar.
func (c *Controller) Ray() util.Ray {
	f := c.Forward()
	return util.Ray{
		Origin:    c.RLCamera.Position,
		Direction: rl.Vector3{X: f.X(), Y: f.Y(), Z: f.Z()},
	}
}

// HandleInput processa mouse e teclado. Retorna true se a câmera se moveu.
func (c *Controller) HandleInput(dt float32) bool {
	moved := false

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		c.Yaw += delta.X * c.Sensitivity
		c.Pitch -= delta.Y * c.Sensitivity

		// Clamp para não virar de ponta cabeça
		limit := float32(89.0 * rl.Deg2rad)
		if c.Pitch > limit {
			c.Pitch = limit
		}
		if c.Pitch < -limit {
			c.Pitch = -limit
		}
		moved = true
	}

	forward := c.Forward()
	flat := mgl32.Vec3{forward.X(), 0, forward.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	right := flat.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	move := mgl32.Vec3{}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(flat)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(flat)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	if rl.IsKeyDown(rl.KeySpace) {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}

	if move.Len() > 0 {
		speed := c.MoveSpeed
		if rl.IsKeyDown(rl.KeyLeftControl) {
			speed *= c.SprintMult
		}
		c.Position = c.Position.Add(move.Normalize().Mul(speed * dt))
		moved = true
	}

	c.refresh()
	return moved
}

// ChunkPos retorna o chunk que contém a câmera.
func (c *Controller) ChunkPos(chunkW, chunkD int32) util.ChunkPos {
	return util.ChunkPos{
		X: util.FloorDiv(int32(math.Floor(float64(c.Position.X()))), chunkW),
		Y: 0,
		Z: util.FloorDiv(int32(math.Floor(float64(c.Position.Z()))), chunkD),
	}
}

func (c *Controller) refresh() {
	f := c.Forward()
	c.RLCamera.Position = rl.Vector3{X: c.Position.X(), Y: c.Position.Y(), Z: c.Position.Z()}
	c.RLCamera.Target = rl.Vector3{
		X: c.Position.X() + f.X(),
		Y: c.Position.Y() + f.Y(),
		Z: c.Position.Z() + f.Z(),
	}
}
