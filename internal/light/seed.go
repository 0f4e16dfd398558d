package light

import (
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// SeedChunk faz a semeadura inicial de luz de um chunk recém-inserido no
// mapa: preenche as colunas de skylight de cima para baixo, grava os
// emissores e devolve as seeds de fronteira: células de onde a luz ainda
// tem para onde fluir, incluindo luz puxada de vizinhos já carregados.
//
// As escritas locais são silenciosas (sem marcar dirty): o build de malha
// inicial do chunk inteiro vem logo em seguida. O chamador roda
// Propagate(seeds, false) na sequência.
func (e *Engine) SeedChunk(c *voxel.Chunk) []Seed {
	baseX := c.Pos.X * c.Dims.W
	baseY := c.Pos.Y * c.Dims.H
	baseZ := c.Pos.Z * c.Dims.D

	// Colunas de skylight: 15 descendo até o primeiro bloco opaco.
	for x := int32(0); x < c.Dims.W; x++ {
		for z := int32(0); z < c.Dims.D; z++ {
			for y := c.Dims.H - 1; y >= 0; y-- {
				if e.reg.IsOpaque(c.GetBlock(x, y, z).ID) {
					break
				}
				l := c.GetLight(x, y, z)
				c.SetLightSilent(x, y, z, l.WithChannel(voxel.ChannelSky, voxel.MaxLight))
			}
		}
	}

	var seeds []Seed

	// Emissores + frontier scan: uma célula iluminada vira seed se algum
	// vizinho (resolvido globalmente, então cruzando bordas de chunk)
	// pudesse receber um valor maior do que já tem.
	for x := int32(0); x < c.Dims.W; x++ {
		for z := int32(0); z < c.Dims.D; z++ {
			for y := int32(0); y < c.Dims.H; y++ {
				b := c.GetBlock(x, y, z)
				def := e.reg.Block(b.ID)

				if def.Luminous() {
					l := c.GetLight(x, y, z)
					for ch := 0; ch < 3; ch++ {
						if def.Luminance[ch] > l.Channel(ch) {
							l = l.WithChannel(ch, def.Luminance[ch])
						}
					}
					c.SetLightSilent(x, y, z, l)
				}

				l := c.GetLight(x, y, z)
				if l == 0 {
					continue
				}

				wx, wy, wz := baseX+x, baseY+y, baseZ+z
				if e.isFrontier(wx, wy, wz, l) {
					seeds = append(seeds, Seed{wx, wy, wz})
				}
			}
		}
	}

	// Puxa luz de vizinhos carregados: células imediatamente do outro lado
	// das quatro bordas horizontais viram seeds se estiverem iluminadas.
	for x := int32(0); x < c.Dims.W; x++ {
		for y := int32(0); y < c.Dims.H; y++ {
			seeds = e.appendIfLit(seeds, baseX+x, baseY+y, baseZ-1)
			seeds = e.appendIfLit(seeds, baseX+x, baseY+y, baseZ+c.Dims.D)
		}
	}
	for z := int32(0); z < c.Dims.D; z++ {
		for y := int32(0); y < c.Dims.H; y++ {
			seeds = e.appendIfLit(seeds, baseX-1, baseY+y, baseZ+z)
			seeds = e.appendIfLit(seeds, baseX+c.Dims.W, baseY+y, baseZ+z)
		}
	}

	return seeds
}

// isFrontier verifica se a luz da célula ainda tem para onde escoar.
func (e *Engine) isFrontier(wx, wy, wz int32, l voxel.Light) bool {
	for _, d := range dirs {
		nx, ny, nz := wx+d[0], wy+d[1], wz+d[2]
		if e.reg.IsOpaque(e.grid.GetBlock(nx, ny, nz).ID) {
			continue
		}
		nl := e.grid.GetLight(nx, ny, nz)
		for ch := 0; ch < voxel.ChannelCount; ch++ {
			if flowValue(ch, l.Channel(ch), d) > nl.Channel(ch) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) appendIfLit(seeds []Seed, x, y, z int32) []Seed {
	if e.grid.GetLight(x, y, z) != 0 {
		seeds = append(seeds, Seed{x, y, z})
	}
	return seeds
}
