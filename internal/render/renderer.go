package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"sort"
	"unsafe"

	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ChunkModel guarda os modelos GPU de um chunk (um rl.Model por piece).
type ChunkModel struct {
	Pos         util.ChunkPos
	Generation  uint64
	Opaque      []rl.Model
	Transparent []rl.Model
}

// Renderer mantém os modelos de chunk na GPU e desenha em dois passes:
// opaco primeiro, transparente depois (ordenado de trás para frente,
// sem escrita de profundidade).
type Renderer struct {
	Models map[util.ChunkPos]*ChunkModel

	shader   rl.Shader
	hasShade bool
}

// NewRenderer cria o renderizador. A janela já deve estar aberta para
// que os shaders sejam compilados.
func NewRenderer() *Renderer {
	r := &Renderer{
		Models: make(map[util.ChunkPos]*ChunkModel),
	}
	if rl.IsWindowReady() {
		r.shader = rl.LoadShaderFromMemory(chunkVertexShader, chunkFragmentShader)
		if r.shader.ID != 0 {
			locs := unsafe.Slice(r.shader.Locs, 32)
			locs[0] = rl.GetShaderLocation(r.shader, "texture0")
			locs[12] = rl.GetShaderLocation(r.shader, "colDiffuse")
			r.hasShade = true
		}
	}
	return r
}

// Upload substitui os modelos GPU de um chunk pelos buffers recém-publicados.
// Deve ser chamado na thread principal (contexto GL).
func (r *Renderer) Upload(pos util.ChunkPos, set voxel.MeshSet) {
	if !rl.IsWindowReady() {
		return
	}

	if old, ok := r.Models[pos]; ok {
		if old.Generation >= set.Generation {
			return // Publicação obsoleta, o chunk já tem malha mais nova
		}
		unloadChunkModel(old)
		delete(r.Models, pos)
	}

	if len(set.Opaque) == 0 && len(set.Transparent) == 0 {
		return
	}

	cm := &ChunkModel{Pos: pos, Generation: set.Generation}
	for _, piece := range set.Opaque {
		cm.Opaque = append(cm.Opaque, r.pieceToModel(piece))
	}
	for _, piece := range set.Transparent {
		cm.Transparent = append(cm.Transparent, r.pieceToModel(piece))
	}
	r.Models[pos] = cm
}

// Unload libera os modelos GPU de um chunk descartado.
func (r *Renderer) Unload(pos util.ChunkPos) {
	if cm, ok := r.Models[pos]; ok {
		unloadChunkModel(cm)
		delete(r.Models, pos)
	}
}

// UnloadAll libera todos os modelos (shutdown).
func (r *Renderer) UnloadAll() {
	for _, cm := range r.Models {
		unloadChunkModel(cm)
	}
	r.Models = make(map[util.ChunkPos]*ChunkModel)
	if r.hasShade {
		rl.UnloadShader(r.shader)
		r.hasShade = false
	}
}

// Draw desenha todos os chunks carregados. dims dá o tamanho do chunk em
// blocos para posicionar cada modelo no mundo.
func (r *Renderer) Draw(camera rl.Camera3D, dims voxel.Dims) {
	camPos := camera.Position

	// PASS 1: OPACO
	for _, cm := range r.Models {
		origin := chunkOrigin(cm.Pos, dims)
		for _, m := range cm.Opaque {
			rl.DrawModel(m, origin, 1.0, rl.White)
		}
	}

	// PASS 2: TRANSPARENTE, de trás para frente, sem depth write
	var transparent []*ChunkModel
	for _, cm := range r.Models {
		if len(cm.Transparent) > 0 {
			transparent = append(transparent, cm)
		}
	}
	sort.Slice(transparent, func(i, j int) bool {
		return chunkDistSq(transparent[i].Pos, dims, camPos) > chunkDistSq(transparent[j].Pos, dims, camPos)
	})

	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DisableDepthMask()
	// Tint com alpha reduzido: a textura branca padrão do Raylib é opaca,
	// então a translucidez vem do colDiffuse.
	tint := rl.Color{R: 255, G: 255, B: 255, A: 170}
	for _, cm := range transparent {
		origin := chunkOrigin(cm.Pos, dims)
		for _, m := range cm.Transparent {
			rl.DrawModel(m, origin, 1.0, tint)
		}
	}
	rl.EnableDepthMask()
	rl.EndBlendMode()
}

// DrawSelection desenha o contorno do bloco mirado.
func (r *Renderer) DrawSelection(x, y, z int32) {
	pos := rl.Vector3{X: float32(x) + 0.5, Y: float32(y) + 0.5, Z: float32(z) + 0.5}
	rl.DrawCubeWires(pos, 1.01, 1.01, 1.01, rl.Black)
}

func chunkOrigin(pos util.ChunkPos, dims voxel.Dims) rl.Vector3 {
	return rl.Vector3{
		X: float32(pos.X * dims.W),
		Y: float32(pos.Y * dims.H),
		Z: float32(pos.Z * dims.D),
	}
}

func chunkDistSq(pos util.ChunkPos, dims voxel.Dims, cam rl.Vector3) float32 {
	center := rl.Vector3{
		X: float32(pos.X*dims.W) + float32(dims.W)/2,
		Y: cam.Y,
		Z: float32(pos.Z*dims.D) + float32(dims.D)/2,
	}
	return util.DistSq(cam, center)
}

func (r *Renderer) pieceToModel(piece voxel.MeshPiece) rl.Model {
	mesh := pieceToMesh(piece)
	rl.UploadMesh(&mesh, false)
	freeMeshRAM(&mesh)
	model := rl.LoadModelFromMesh(mesh)
	if r.hasShade && model.MaterialCount > 0 {
		materials := unsafe.Slice(model.Materials, model.MaterialCount)
		materials[0].Shader = r.shader
	}
	return model
}

// pieceToMesh copia os buffers Go para memória C, como o Raylib espera
// de uma malha que ele mesmo vai liberar depois.
func pieceToMesh(piece voxel.MeshPiece) rl.Mesh {
	var mesh rl.Mesh
	mesh.VertexCount = int32(piece.VertexCount())
	mesh.TriangleCount = int32(len(piece.Indices) / 3)

	if len(piece.Vertices) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&piece.Vertices[0]), len(piece.Vertices)*4))
	}
	if len(piece.Normals) > 0 {
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&piece.Normals[0]), len(piece.Normals)*4))
	}
	if len(piece.UVs) > 0 {
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&piece.UVs[0]), len(piece.UVs)*4))
	}
	if len(piece.Colors) > 0 {
		mesh.Colors = (*uint8)(copyToC(unsafe.Pointer(&piece.Colors[0]), len(piece.Colors)))
	}
	if len(piece.Indices) > 0 {
		mesh.Indices = (*uint16)(copyToC(unsafe.Pointer(&piece.Indices[0]), len(piece.Indices)*2))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// freeMeshRAM libera as cópias em RAM depois do upload para a GPU.
func freeMeshRAM(mesh *rl.Mesh) {
	if mesh.Vertices != nil {
		C.free(unsafe.Pointer(mesh.Vertices))
		mesh.Vertices = nil
	}
	if mesh.Normals != nil {
		C.free(unsafe.Pointer(mesh.Normals))
		mesh.Normals = nil
	}
	if mesh.Texcoords != nil {
		C.free(unsafe.Pointer(mesh.Texcoords))
		mesh.Texcoords = nil
	}
	if mesh.Colors != nil {
		C.free(unsafe.Pointer(mesh.Colors))
		mesh.Colors = nil
	}
	if mesh.Indices != nil {
		C.free(unsafe.Pointer(mesh.Indices))
		mesh.Indices = nil
	}
}

func unloadChunkModel(cm *ChunkModel) {
	for _, m := range cm.Opaque {
		rl.UnloadModel(m)
	}
	for _, m := range cm.Transparent {
		rl.UnloadModel(m)
	}
}
