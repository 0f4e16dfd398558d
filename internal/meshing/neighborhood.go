package meshing

import (
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"
)

// Neighborhood é a entrada do build: o chunk alvo mais até 10 vizinhos
// (6 adjacentes por face + 4 diagonais horizontais), resolvidos por posição
// no momento da chamada, nunca armazenados no Chunk (evita ciclos de
// referência e vizinhos obsoletos após eviction).
//
// Vizinho nil (não carregado) responde como não-sólido com luz 0; acima do
// topo do mundo o skylight responde no máximo.
type Neighborhood struct {
	Target    *voxel.Chunk
	Neighbors [10]*voxel.Chunk // Na ordem de util.NeighborDirs
	Reg       *registry.Registry
}

// NewNeighborhood resolve os vizinhos do alvo usando a função de lookup dada
// (tipicamente o mapa de chunks do World).
func NewNeighborhood(target *voxel.Chunk, reg *registry.Registry, lookup func(util.ChunkPos) *voxel.Chunk) *Neighborhood {
	nb := &Neighborhood{Target: target, Reg: reg}
	if lookup != nil {
		for i, d := range util.NeighborDirs {
			nb.Neighbors[i] = lookup(target.Pos.Add(d))
		}
	}
	return nb
}

// resolve mapeia uma coordenada local ao alvo (possivelmente fora dos
// limites) para o chunk dono e a coordenada local dele.
func (nb *Neighborhood) resolve(x, y, z int32) (*voxel.Chunk, int32, int32, int32) {
	d := nb.Target.Dims
	if x >= 0 && x < d.W && y >= 0 && y < d.H && z >= 0 && z < d.D {
		return nb.Target, x, y, z
	}

	cx := util.FloorDiv(x, d.W)
	cy := util.FloorDiv(y, d.H)
	cz := util.FloorDiv(z, d.D)
	for i, dir := range util.NeighborDirs {
		if dir.X == cx && dir.Y == cy && dir.Z == cz {
			return nb.Neighbors[i], x - cx*d.W, y - cy*d.H, z - cz*d.D
		}
	}
	return nil, 0, 0, 0
}

// Block amostra um bloco em coordenadas locais ao alvo, cruzando bordas.
func (nb *Neighborhood) Block(x, y, z int32) voxel.Block {
	c, lx, ly, lz := nb.resolve(x, y, z)
	if c == nil {
		return voxel.Block{}
	}
	return c.GetBlock(lx, ly, lz)
}

// Light amostra a luz em coordenadas locais ao alvo, cruzando bordas.
// Acima do topo do mundo: céu aberto (skylight máximo). Abaixo ou em
// vizinho não carregado: 0.
func (nb *Neighborhood) Light(x, y, z int32) voxel.Light {
	if nb.aboveWorldTop(y) {
		return voxel.PackLight(0, 0, 0, voxel.MaxLight)
	}
	c, lx, ly, lz := nb.resolve(x, y, z)
	if c == nil {
		return 0
	}
	return c.GetLight(lx, ly, lz)
}

// aboveWorldTop verifica se a coordenada local y está acima da altura do
// mundo. A altura do mundo é fixa e igual à altura do chunk, então qualquer
// y além dela é céu aberto.
func (nb *Neighborhood) aboveWorldTop(y int32) bool {
	return nb.Target.Pos.Y*nb.Target.Dims.H+y >= nb.Target.Dims.H
}

// Opaque informa se a célula bloqueia visão/luz.
func (nb *Neighborhood) Opaque(x, y, z int32) bool {
	return nb.Reg.IsOpaque(nb.Block(x, y, z).ID)
}

// Solid informa se a célula é sólida (oclusão de canto no AO).
func (nb *Neighborhood) Solid(x, y, z int32) bool {
	return nb.Reg.IsSolid(nb.Block(x, y, z).ID)
}
