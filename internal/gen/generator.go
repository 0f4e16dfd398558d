// Package gen é a fronteira de geração de terreno: uma função pura que
// preenche a grade de blocos de um chunk. O core consome apenas a interface;
// o gerador simplex é a implementação padrão.
package gen

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// Generator preenche os blocos de um chunk recém-criado.
// Roda em workers de geração; deve ser puro em relação ao chunk (sem tocar
// estado compartilhado mutável).
type Generator interface {
	Generate(c *voxel.Chunk, reg *registry.Registry) error
}

// SimplexGenerator gera terreno por heightmap de ruído simplex fractal.
type SimplexGenerator struct {
	noise opensimplex.Noise32

	BaseHeight int32
	Amplitude  float32
	SeaLevel   int32
}

// NewSimplex cria o gerador padrão para a seed dada.
func NewSimplex(seed int64) *SimplexGenerator {
	return &SimplexGenerator{
		noise:      opensimplex.New32(seed),
		BaseHeight: 64,
		Amplitude:  24,
		SeaLevel:   60,
	}
}

// fractalNoise soma oitavas de simplex 2D.
func (g *SimplexGenerator) fractalNoise(x, z int32, amplitude float32, octaves int, lacunarity, persistence, scale float32) float32 {
	val := float32(0)
	x1 := float32(x)
	z1 := float32(z)
	for i := 0; i < octaves; i++ {
		val += g.noise.Eval2(x1/scale, z1/scale) * amplitude
		x1 *= lacunarity
		z1 *= lacunarity
		amplitude *= persistence
	}
	return val
}

// Generate preenche o chunk com camadas pedra/terra/grama, água até o nível
// do mar e veios raros de lâmpada de brasa (emissores subterrâneos).
func (g *SimplexGenerator) Generate(c *voxel.Chunk, reg *registry.Registry) error {
	d := c.Dims
	baseX := c.Pos.X * d.W
	baseZ := c.Pos.Z * d.D

	for x := int32(0); x < d.W; x++ {
		for z := int32(0); z < d.D; z++ {
			wx := baseX + x
			wz := baseZ + z

			h := g.BaseHeight + int32(g.fractalNoise(wx, wz, g.Amplitude, 4, 2.0, 0.5, 96.0))
			if h < 1 {
				h = 1
			}
			if h >= d.H {
				h = d.H - 1
			}

			for y := int32(0); y < d.H; y++ {
				var id uint8
				switch {
				case y > h:
					if y <= g.SeaLevel {
						id = registry.Water
					} else {
						id = registry.Air
					}
				case y == h:
					if y < g.SeaLevel {
						id = registry.Dirt
					} else {
						id = registry.Grass
					}
				case y > h-4:
					id = registry.Dirt
				default:
					id = registry.Stone
					// Veio raro de emissor: determinístico na coordenada.
					if y > 4 && g.noise.Eval3(float32(wx)/7.0, float32(y)/7.0, float32(wz)/7.0) > 0.82 {
						id = registry.EmberLamp
					}
				}
				if id != registry.Air {
					c.SetBlock(x, y, z, voxel.Block{ID: id})
				}
			}
		}
	}

	c.ClearDirty()
	return nil
}

// FlatGenerator preenche um piso sólido de um bloco de altura; usado em
// testes e como fallback.
type FlatGenerator struct {
	Floor uint8
	Level int32
}

// Generate implementa Generator.
func (g *FlatGenerator) Generate(c *voxel.Chunk, reg *registry.Registry) error {
	for x := int32(0); x < c.Dims.W; x++ {
		for z := int32(0); z < c.Dims.D; z++ {
			for y := int32(0); y <= g.Level && y < c.Dims.H; y++ {
				c.SetBlock(x, y, z, voxel.Block{ID: g.Floor})
			}
		}
	}
	c.ClearDirty()
	return nil
}
