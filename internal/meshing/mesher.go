// Package meshing transforma a grade de blocos+luz de um chunk (e seus
// vizinhos) em geometria renderizável: culling de faces, rotação de modelos
// e luz ambiente por vértice.
package meshing

import (
	"sync"

	"github.com/fkerimk/Xyloia/internal/voxel"
)

// FlushVertexLimit é o teto de vértices acumulados por piece. Índices são
// u16, então fazemos flush bem antes de 65535 para nunca estourar.
const FlushVertexLimit = 60000

// Builder acumula vértices de um dos passes (opaco ou transparente) e faz
// flush em pieces quando o limite é atingido: um chunk denso produz vários
// pieces.
type Builder struct {
	vertices []float32
	normals  []float32
	uvs      []float32
	colors   []uint8
	indices  []uint16

	pieces []voxel.MeshPiece
}

// Pool global para reciclar Builders e evitar alocação excessiva
// (pressão de GC na taxa de rebuild que o streaming sustenta).
var builderPool = sync.Pool{
	New: func() interface{} {
		return &Builder{
			vertices: make([]float32, 0, 4096),
			normals:  make([]float32, 0, 4096),
			uvs:      make([]float32, 0, 2048),
			colors:   make([]uint8, 0, 4096),
			indices:  make([]uint16, 0, 2048),
		}
	},
}

// GetBuilder aloca ou recicla um builder vazio.
func GetBuilder() *Builder {
	return builderPool.Get().(*Builder)
}

// PutBuilder zera os buffers e devolve a memória para o pool.
func PutBuilder(b *Builder) {
	if b == nil {
		return
	}
	b.reset()
	b.pieces = nil
	builderPool.Put(b)
}

func (b *Builder) reset() {
	b.vertices = b.vertices[:0]
	b.normals = b.normals[:0]
	b.uvs = b.uvs[:0]
	b.colors = b.colors[:0]
	b.indices = b.indices[:0]
}

// VertexCount retorna o número de vértices acumulados desde o último flush.
func (b *Builder) VertexCount() int {
	return len(b.vertices) / 3
}

// AddQuad adiciona uma face retangular com 4 vértices na ordem BL,BR,TR,TL.
// flipDiagonal escolhe a divisão em triângulos que emparelha os dois cantos
// mais claros (evita a costura escura de uma triangulação fixa).
func (b *Builder) AddQuad(v [4][3]float32, n [3]float32, uv [4][2]float32, c [4][4]uint8, flipDiagonal bool) {
	if b.VertexCount()+4 > FlushVertexLimit {
		b.flush()
	}

	base := uint16(b.VertexCount())
	for i := 0; i < 4; i++ {
		b.vertices = append(b.vertices, v[i][0], v[i][1], v[i][2])
		b.normals = append(b.normals, n[0], n[1], n[2])
		b.uvs = append(b.uvs, uv[i][0], uv[i][1])
		b.colors = append(b.colors, c[i][0], c[i][1], c[i][2], c[i][3])
	}

	if flipDiagonal {
		// Diagonal 1-3: triângulos (1,2,3) e (1,3,0)
		b.indices = append(b.indices,
			base+1, base+2, base+3,
			base+1, base+3, base+0)
	} else {
		// Diagonal 0-2: triângulos (0,1,2) e (0,2,3)
		b.indices = append(b.indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3)
	}
}

// flush move os arrays acumulados para um piece e recomeça do zero.
func (b *Builder) flush() {
	if len(b.vertices) == 0 {
		return
	}
	piece := voxel.MeshPiece{
		Vertices: append([]float32(nil), b.vertices...),
		Normals:  append([]float32(nil), b.normals...),
		UVs:      append([]float32(nil), b.uvs...),
		Colors:   append([]uint8(nil), b.colors...),
		Indices:  append([]uint16(nil), b.indices...),
	}
	b.pieces = append(b.pieces, piece)
	b.reset()
}

// Finish faz o flush final e retorna todos os pieces produzidos.
func (b *Builder) Finish() []voxel.MeshPiece {
	b.flush()
	pieces := b.pieces
	b.pieces = nil
	return pieces
}
