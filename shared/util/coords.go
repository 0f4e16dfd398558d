package util

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vector3 é um alias para rl.Vector3 para conveniência.
type Vector3 = rl.Vector3

// Ray representa um raio no espaço 3D (origem e direção).
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// ChunkPos identifica um chunk na grade de chunks (unidades de chunk, não de bloco).
// Com a altura do mundo fixa, Y é sempre 0 nesta build, mas o mapa e o
// scheduler tratam a tripla de forma genérica.
type ChunkPos struct {
	X, Y, Z int32
}

// NewChunkPos cria uma nova posição de chunk.
func NewChunkPos(x, y, z int32) ChunkPos {
	return ChunkPos{X: x, Y: y, Z: z}
}

// Add soma duas posições.
func (p ChunkPos) Add(other ChunkPos) ChunkPos {
	return ChunkPos{X: p.X + other.X, Y: p.Y + other.Y, Z: p.Z + other.Z}
}

// DistSq retorna a distância quadrada (em chunks) até outra posição.
func (p ChunkPos) DistSq(other ChunkPos) int32 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// String retorna a representação em string da posição.
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// FloorDiv divide arredondando para baixo (necessário para coordenadas negativas).
func FloorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod retorna o resto sempre positivo.
func Mod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Directions representa as direções cardinais, diagonais e verticais.
type Directions uint16

const (
	DirNone      Directions = 0
	DirNorthWest Directions = 1 << iota
	DirNorth
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirUp
	DirDown
)

// Offset é um deslocamento em coordenadas de bloco.
// Y é o eixo vertical (para cima); o plano horizontal é X/Z.
type Offset struct {
	X, Y, Z int32
}

// DirOffsets mapeia direções para offsets de coordenada de bloco.
var DirOffsets = map[Directions]Offset{
	DirNorth:     {X: 0, Y: 0, Z: -1},
	DirSouth:     {X: 0, Y: 0, Z: 1},
	DirEast:      {X: 1, Y: 0, Z: 0},
	DirWest:      {X: -1, Y: 0, Z: 0},
	DirNorthEast: {X: 1, Y: 0, Z: -1},
	DirNorthWest: {X: -1, Y: 0, Z: -1},
	DirSouthEast: {X: 1, Y: 0, Z: 1},
	DirSouthWest: {X: -1, Y: 0, Z: 1},
	DirUp:        {X: 0, Y: 1, Z: 0},
	DirDown:      {X: 0, Y: -1, Z: 0},
}

// FaceDirs são as 6 direções de face na ordem canônica usada pelo mesher:
// leste, oeste, cima, baixo, sul, norte.
var FaceDirs = [6]Offset{
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
}

// NeighborDirs são as 10 posições de chunk vizinhas relevantes para o meshing:
// 6 adjacentes por face + 4 diagonais horizontais.
var NeighborDirs = [10]ChunkPos{
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: 1, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: -1},
	{X: -1, Y: 0, Z: 1},
	{X: -1, Y: 0, Z: -1},
}

// Abs retorna o valor absoluto de um int32.
func Abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// DistSq retorna a distância ao quadrado entre dois pontos (evita sqrt).
func DistSq(a, b Vector3) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// Lerp interpola linearmente entre a e b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
