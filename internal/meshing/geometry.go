package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/shared/util"
)

// Índices de face na ordem canônica (espelha registry.FaceDir e util.FaceDirs).
const (
	faceEast = iota
	faceWest
	faceUp
	faceDown
	faceSouth
	faceNorth
	faceCount
)

// faceDirs são os offsets inteiros de cada face, tirados da tabela canônica.
var faceDirs = func() [faceCount][3]int32 {
	var out [faceCount][3]int32
	for i, d := range util.FaceDirs {
		out[i] = [3]int32{d.X, d.Y, d.Z}
	}
	return out
}()

// faceNormals em float para os buffers de normal.
var faceNormals = [faceCount][3]float32{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Cada face é parametrizada por um canto origem (BL) e dois eixos u (BL→BR)
// e v (BL→TL), escolhidos de modo que a ordem BL,BR,TR,TL enrole CCW vista
// de fora (cross(u,v) aponta para fora).
var faceOrigin = [faceCount][3]float32{
	{1, 0, 1}, // east
	{0, 0, 0}, // west
	{0, 1, 1}, // up
	{0, 0, 0}, // down
	{0, 0, 1}, // south
	{1, 0, 0}, // north
}

var faceU = [faceCount][3]float32{
	{0, 0, -1},
	{0, 0, 1},
	{1, 0, 0},
	{1, 0, 0},
	{1, 0, 0},
	{-1, 0, 0},
}

var faceV = [faceCount][3]float32{
	{0, 1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
	{0, 1, 0},
	{0, 1, 0},
}

// faceUInt/faceVInt são os mesmos eixos como offsets inteiros, usados na
// amostragem de luz dos cantos.
var faceUInt = [faceCount][3]int32{
	{0, 0, -1},
	{0, 0, 1},
	{1, 0, 0},
	{1, 0, 0},
	{1, 0, 0},
	{-1, 0, 0},
}

var faceVInt = [faceCount][3]int32{
	{0, 1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
	{0, 1, 0},
	{0, 1, 0},
}

// cornerSigns dá, para cada canto na ordem BL,BR,TR,TL, o sinal dos eixos
// u e v apontando para fora do quad naquele canto.
var cornerSigns = [4][2]int32{
	{-1, -1}, // BL
	{1, -1},  // BR
	{1, 1},   // TR
	{-1, 1},  // TL
}

// cubeFaceCorners retorna os 4 cantos (BL,BR,TR,TL) da face de um cubo
// unitário na posição local (x,y,z).
func cubeFaceCorners(face int, x, y, z float32) [4][3]float32 {
	o := faceOrigin[face]
	u := faceU[face]
	v := faceV[face]
	base := [3]float32{x + o[0], y + o[1], z + o[2]}
	var out [4][3]float32
	out[0] = base
	out[1] = [3]float32{base[0] + u[0], base[1] + u[1], base[2] + u[2]}
	out[2] = [3]float32{base[0] + u[0] + v[0], base[1] + u[1] + v[1], base[2] + u[2] + v[2]}
	out[3] = [3]float32{base[0] + v[0], base[1] + v[1], base[2] + v[2]}
	return out
}

// yawCycle é o ciclo das faces horizontais sob rotação de +90° em Y:
// leste→norte→oeste→sul.
var yawCycle = [4]int{faceEast, faceNorth, faceWest, faceSouth}

var yawCycleIndex = map[int]int{faceEast: 0, faceNorth: 1, faceWest: 2, faceSouth: 3}

// rotateFaceMaps dá, para o modo FacingRotate, a permutação
// face-do-mundo → face-do-modelo. O índice é o valor de data: para onde o
// topo do modelo aponta (0:+Y, 1:-Y, 2:+X, 3:-X, 4:+Z, 5:-Z).
var rotateFaceMaps = [6][faceCount]int{
	{faceEast, faceWest, faceUp, faceDown, faceSouth, faceNorth},
	{faceEast, faceWest, faceDown, faceUp, faceNorth, faceSouth},
	{faceUp, faceDown, faceWest, faceEast, faceSouth, faceNorth},
	{faceDown, faceUp, faceEast, faceWest, faceSouth, faceNorth},
	{faceEast, faceWest, faceNorth, faceSouth, faceUp, faceDown},
	{faceEast, faceWest, faceSouth, faceNorth, faceDown, faceUp},
}

// identityFaceMap é a permutação neutra.
var identityFaceMap = rotateFaceMaps[0]

// orientation resolve a rotação de um bloco: a permutação
// face-do-mundo → face-do-modelo, a matriz de rotação em torno do centro do
// voxel e se ela é exatamente alinhada aos eixos (caminho barato de bounds).
type orientation struct {
	faceMap     [faceCount]int
	invFaceMap  [faceCount]int
	matrix      mgl32.Mat4
	hasMatrix   bool
	axisAligned bool
}

var identityOrientation = orientation{
	faceMap:     identityFaceMap,
	invFaceMap:  identityFaceMap,
	axisAligned: true,
}

// blockOrientation resolve a variante de facing do bloco com seu data.
func blockOrientation(def *registry.BlockDef, data uint8) orientation {
	switch def.Facing.Mode {
	case registry.FacingYaw:
		if data == 0 {
			return identityOrientation
		}
		step := def.Facing.YawStep
		angle := float32(int32(data)*step) * mgl32.DegToRad(1)

		// O mapeamento de face usa o yaw arredondado para múltiplos de 90°;
		// a matriz carrega o ângulo exato para o caminho de vértices.
		steps := ((int(int32(data)*step)%360+360)%360 + 45) / 90 % 4
		o := orientation{
			matrix:      rotateAboutCenter(mgl32.HomogRotate3DY(angle)),
			hasMatrix:   true,
			axisAligned: int(int32(data)*step)%90 == 0,
		}
		for w := 0; w < faceCount; w++ {
			if i, ok := yawCycleIndex[w]; ok {
				o.faceMap[w] = yawCycle[((i-steps)%4+4)%4]
			} else {
				o.faceMap[w] = w
			}
		}
		o.invFaceMap = invertFaceMap(o.faceMap)
		return o

	case registry.FacingRotate:
		k := int(data) % 6
		if k == 0 {
			return identityOrientation
		}
		o := orientation{
			faceMap:     rotateFaceMaps[k],
			matrix:      rotateAboutCenter(rotateAxisMatrix(k)),
			hasMatrix:   true,
			axisAligned: true,
		}
		o.invFaceMap = invertFaceMap(o.faceMap)
		return o

	default:
		return identityOrientation
	}
}

// rotateAxisMatrix devolve a rotação de 90° correspondente à orientação k
// do modo Rotate.
func rotateAxisMatrix(k int) mgl32.Mat4 {
	quarter := mgl32.DegToRad(90)
	switch k {
	case 1:
		return mgl32.HomogRotate3DX(2 * quarter)
	case 2:
		return mgl32.HomogRotate3DZ(-quarter)
	case 3:
		return mgl32.HomogRotate3DZ(quarter)
	case 4:
		return mgl32.HomogRotate3DX(quarter)
	case 5:
		return mgl32.HomogRotate3DX(-quarter)
	}
	return mgl32.Ident4()
}

// rotateAboutCenter conjuga uma rotação para girar em torno do centro do
// voxel (0.5, 0.5, 0.5) em vez da origem.
func rotateAboutCenter(rot mgl32.Mat4) mgl32.Mat4 {
	toCenter := mgl32.Translate3D(0.5, 0.5, 0.5)
	back := mgl32.Translate3D(-0.5, -0.5, -0.5)
	return toCenter.Mul4(rot).Mul4(back)
}

func invertFaceMap(m [faceCount]int) [faceCount]int {
	var inv [faceCount]int
	for w, f := range m {
		inv[f] = w
	}
	return inv
}

// rotateUV aplica a rotação 0/90/180/270 declarada no modelo: desloca qual
// canto do quad recebe qual coordenada de textura.
func rotateUV(uv [4][2]float32, rot int) [4][2]float32 {
	shift := ((rot/90)%4 + 4) % 4
	if shift == 0 {
		return uv
	}
	var out [4][2]float32
	for i := 0; i < 4; i++ {
		out[i] = uv[(i+shift)%4]
	}
	return out
}
