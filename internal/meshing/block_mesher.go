package meshing

import (
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// BuildChunk gera a malha completa do chunk alvo da vizinhança: pieces
// opacos e transparentes, função pura do estado de bloco/luz no momento da
// chamada. Dois builds sobre o mesmo estado produzem saída idêntica.
func BuildChunk(nb *Neighborhood) voxel.MeshSet {
	opaque := GetBuilder()
	transparent := GetBuilder()

	dims := nb.Target.Dims
	for x := int32(0); x < dims.W; x++ {
		for z := int32(0); z < dims.D; z++ {
			for y := int32(0); y < dims.H; y++ {
				b := nb.Target.GetBlock(x, y, z)
				if b.IsAir() {
					continue
				}
				def := nb.Reg.Block(b.ID)

				if nb.encased(x, y, z) {
					continue
				}

				dst := transparent
				if def.Opaque {
					dst = opaque
				}

				orient := blockOrientation(def, b.Data)
				if model := nb.Reg.Model(def.Model); model != nil && !model.FullCube() {
					nb.emitModel(dst, def, model, orient, x, y, z)
				} else {
					nb.emitCube(dst, def, b, orient, x, y, z)
				}
			}
		}
	}

	set := voxel.MeshSet{
		Opaque:      opaque.Finish(),
		Transparent: transparent.Finish(),
	}
	PutBuilder(opaque)
	PutBuilder(transparent)
	return set
}

// shouldCullFace decide se a face voltada para o vizinho dado é suprimida:
// vizinho opaco, mesmo id (auto-opaco, a menos que translúcido e não-cheio)
// ou mesmo grupo de conexão (blocos que se fundem visualmente).
func (nb *Neighborhood) shouldCullFace(def *registry.BlockDef, b voxel.Block, neighbor voxel.Block) bool {
	if nb.Reg.IsOpaque(neighbor.ID) {
		return true
	}
	if neighbor.ID == b.ID {
		// Auto-opaco: só blocos translúcidos e não-cheios renderizam a
		// face entre dois vizinhos do mesmo id.
		if !def.Translucent {
			return true
		}
		if m := nb.Reg.Model(def.Model); m == nil || m.FullCube() {
			return true
		}
		return false
	}
	if neighbor.ID != b.ID && nb.Reg.SameConnectGroup(b.ID, neighbor.ID) {
		return true
	}
	return false
}

// UVs do quad inteiro na ordem BL,BR,TR,TL (v cresce para baixo na textura).
var fullFaceUV = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// emitCube é o caminho rápido para blocos de cubo trivial: tabelas
// pré-computadas de face, parametrizado apenas pela rotação de data.
func (nb *Neighborhood) emitCube(dst *Builder, def *registry.BlockDef, b voxel.Block, orient orientation, x, y, z int32) {
	for face := 0; face < faceCount; face++ {
		d := faceDirs[face]
		neighbor := nb.Block(x+d[0], y+d[1], z+d[2])
		if nb.shouldCullFace(def, b, neighbor) {
			continue
		}

		colors, flip := nb.faceCornerColors(face, x, y, z)
		verts := cubeFaceCorners(face, float32(x), float32(y), float32(z))

		// Num cubo a geometria é invariante à rotação de data; apenas a
		// atribuição de textura gira quando a face horizontal muda de papel.
		uv := fullFaceUV
		if mf := orient.faceMap[face]; mf != face {
			if wi, ok := yawCycleIndex[face]; ok {
				mi := yawCycleIndex[mf]
				uv = rotateUV(uv, 90*((mi-wi+4)%4))
			}
		}

		dst.AddQuad(verts, faceNormals[face], uv, colors, flip)
	}
}
