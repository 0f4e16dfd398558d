package voxel

import (
	"sync"
	"sync/atomic"

	"github.com/fkerimk/Xyloia/shared/util"
)

// Dimensões padrão de um chunk. A altura é a altura total do mundo
// (mundos verticalmente infinitos estão fora de escopo).
const (
	Width  int32 = 16
	Height int32 = 256
	Depth  int32 = 16
)

// Dims são as dimensões de um chunk. Os testes usam chunks menores;
// o mundo real usa sempre Width×Height×Depth.
type Dims struct {
	W, H, D int32
}

// DefaultDims retorna as dimensões padrão do mundo.
func DefaultDims() Dims {
	return Dims{W: Width, H: Height, D: Depth}
}

// Volume retorna o número de voxels.
func (d Dims) Volume() int {
	return int(d.W) * int(d.H) * int(d.D)
}

// MeshPiece é um conjunto de buffers prontos para upload na GPU.
// Índices são u16, então um piece nunca passa de 65535 vértices
// (o mesher faz flush bem antes disso).
type MeshPiece struct {
	Vertices []float32 // 3×f32 por vértice
	Normals  []float32 // 3×f32 por vértice
	UVs      []float32 // 2×f32 por vértice
	Colors   []uint8   // 4×u8 por vértice: R,G,B de luz de bloco + skylight, nibbles escalados para 0..255
	Indices  []uint16
}

// VertexCount retorna o número de vértices do piece.
func (p MeshPiece) VertexCount() int {
	return len(p.Vertices) / 3
}

// MeshSet é o resultado completo de um build de malha de um chunk,
// separado em passes opaco e transparente.
type MeshSet struct {
	Opaque      []MeshPiece
	Transparent []MeshPiece
	Generation  uint64 // Contador monotônico por chunk; detecta publicações obsoletas
}

// Chunk é a unidade de carregamento/meshing/descarte: uma grade densa de
// blocos + luz. Os arrays vêm de um pool por classe de tamanho e voltam
// para ele no Release.
//
// Os arrays de bloco/luz não têm lock interno: o modelo de concorrência
// assume um único escritor por fase de vida (a task de geração durante a
// criação, a thread principal depois). Apenas a malha publicada, que cruza
// threads, é protegida por mutex.
type Chunk struct {
	Pos  util.ChunkPos
	Dims Dims

	blocks []Block
	light  []Light

	dirty atomic.Bool // Bloco/luz mudou desde o último build de malha

	meshMu    sync.Mutex
	mesh      MeshSet
	meshGen   uint64
	meshReady atomic.Bool // Sinal cross-thread: existe malha nova para consumir
}

// NewChunk cria um chunk com dimensões padrão.
func NewChunk(pos util.ChunkPos) *Chunk {
	return NewChunkDims(pos, DefaultDims())
}

// NewChunkDims cria um chunk com dimensões explícitas (testes).
func NewChunkDims(pos util.ChunkPos, dims Dims) *Chunk {
	return &Chunk{
		Pos:    pos,
		Dims:   dims,
		blocks: acquireBlocks(dims.Volume()),
		light:  acquireLight(dims.Volume()),
	}
}

// index converte coordenadas locais no índice row-major (x*D+z)*H+y.
func (c *Chunk) index(x, y, z int32) int {
	return (int(x)*int(c.Dims.D)+int(z))*int(c.Dims.H) + int(y)
}

// InBounds verifica se a coordenada local está dentro do chunk.
func (c *Chunk) InBounds(x, y, z int32) bool {
	return x >= 0 && x < c.Dims.W && y >= 0 && y < c.Dims.H && z >= 0 && z < c.Dims.D
}

// GetBlock retorna o bloco na coordenada local.
// Fora dos limites retorna ar: amostrar através da borda antes do vizinho
// carregar é rotina durante o streaming, não erro.
func (c *Chunk) GetBlock(x, y, z int32) Block {
	if !c.InBounds(x, y, z) {
		return Block{}
	}
	return c.blocks[c.index(x, y, z)]
}

// SetBlock grava o bloco na coordenada local e marca o chunk sujo.
// Fora dos limites é no-op.
func (c *Chunk) SetBlock(x, y, z int32, b Block) {
	if !c.InBounds(x, y, z) {
		return
	}
	c.blocks[c.index(x, y, z)] = b
	c.dirty.Store(true)
}

// GetLight retorna a luz empacotada na coordenada local (0 fora dos limites).
func (c *Chunk) GetLight(x, y, z int32) Light {
	if !c.InBounds(x, y, z) {
		return 0
	}
	return c.light[c.index(x, y, z)]
}

// SetLight grava a luz na coordenada local e marca o chunk sujo.
func (c *Chunk) SetLight(x, y, z int32, l Light) {
	if !c.InBounds(x, y, z) {
		return
	}
	c.light[c.index(x, y, z)] = l
	c.dirty.Store(true)
}

// SetLightSilent grava a luz sem marcar o chunk sujo. Usado na semeadura
// inicial em massa, onde o build de malha subsequente já cobre o chunk todo.
func (c *Chunk) SetLightSilent(x, y, z int32, l Light) {
	if !c.InBounds(x, y, z) {
		return
	}
	c.light[c.index(x, y, z)] = l
}

// IsDirty informa se há estado novo desde o último build de malha.
func (c *Chunk) IsDirty() bool {
	return c.dirty.Load()
}

// MarkDirty força a marcação de rebuild.
func (c *Chunk) MarkDirty() {
	c.dirty.Store(true)
}

// ClearDirty limpa a marcação; chamado pelo mesher ao iniciar um build.
func (c *Chunk) ClearDirty() {
	c.dirty.Store(false)
}

// PublishMesh entrega um MeshSet recém-construído para consumo pela thread
// principal. Publicações fora de ordem (geração menor que a atual) são
// descartadas: o build mais novo vence.
func (c *Chunk) PublishMesh(set MeshSet) {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()

	c.meshGen++
	set.Generation = c.meshGen
	c.mesh = set
	c.meshReady.Store(true)
}

// HasNewMesh informa se existe malha publicada ainda não consumida.
func (c *Chunk) HasNewMesh() bool {
	return c.meshReady.Load()
}

// TakeMesh consome a malha publicada. Retorna false se não houver nova.
func (c *Chunk) TakeMesh() (MeshSet, bool) {
	if !c.meshReady.Load() {
		return MeshSet{}, false
	}
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	if !c.meshReady.Swap(false) {
		return MeshSet{}, false
	}
	return c.mesh, true
}

// Release devolve os arrays de bloco/luz ao pool. O chunk não pode ser
// usado depois disso; o World só chama após remover do mapa.
func (c *Chunk) Release() {
	releaseBlocks(c.blocks)
	releaseLight(c.light)
	c.blocks = nil
	c.light = nil
}
