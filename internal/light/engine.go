// Package light implementa a propagação e remoção de luz sobre a união dos
// chunks carregados: três canais RGB de luz de bloco (decaem 1 por passo) e
// um canal de skylight (não decai descendo em coluna aberta no máximo).
package light

import (
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// Grid é o acesso global a bloco/luz em coordenadas de mundo.
// Implementado pelo World: resolve chunk+local e é no-op/retorna zero quando
// o chunk dono não está carregado.
type Grid interface {
	GetBlock(x, y, z int32) voxel.Block
	GetLight(x, y, z int32) voxel.Light
	// SetLight grava a luz; com markDirty=false a marcação de rebuild é
	// suprimida (semeadura em massa, onde o build inicial já cobre tudo).
	SetLight(x, y, z int32, l voxel.Light, markDirty bool)
}

// Seed é uma coordenada de mundo usada como origem de propagação.
type Seed struct {
	X, Y, Z int32
}

// Engine propaga e remove luz sobre um Grid.
type Engine struct {
	grid Grid
	reg  *registry.Registry
}

// New cria um Engine sobre o grid e registro dados.
func New(grid Grid, reg *registry.Registry) *Engine {
	return &Engine{grid: grid, reg: reg}
}

// dirs são as 6 direções de vizinhança; índice 3 é "para baixo"
// (relevante para a regra de shaft do skylight).
var dirs = [6][3]int32{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func isDown(d [3]int32) bool { return d[1] == -1 }

// flowValue calcula o valor que chega ao vizinho partindo de v pelo canal ch
// na direção d. Skylight em coluna aberta a 15 desce sem decair; qualquer
// outro caso decai 1.
func flowValue(ch int, v uint8, d [3]int32) uint8 {
	if v == 0 {
		return 0
	}
	if ch == voxel.ChannelSky && v == voxel.MaxLight && isDown(d) {
		return voxel.MaxLight
	}
	return v - 1
}

// Propagate roda o flood fill a partir das seeds dadas. Os quatro canais
// avançam juntos no mesmo BFS; um vizinho só é re-enfileirado se algum canal
// subiu. Com markDirty=false os chunks não são marcados para rebuild.
func (e *Engine) Propagate(seeds []Seed, markDirty bool) {
	queue := append([]Seed(nil), seeds...)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		l := e.grid.GetLight(cur.X, cur.Y, cur.Z)
		if l == 0 {
			continue
		}

		for _, d := range dirs {
			nx, ny, nz := cur.X+d[0], cur.Y+d[1], cur.Z+d[2]
			nb := e.grid.GetBlock(nx, ny, nz)
			if e.reg.IsOpaque(nb.ID) {
				continue
			}

			nl := e.grid.GetLight(nx, ny, nz)
			updated := nl
			for ch := 0; ch < voxel.ChannelCount; ch++ {
				incoming := flowValue(ch, l.Channel(ch), d)
				if incoming > updated.Channel(ch) {
					updated = updated.WithChannel(ch, incoming)
				}
			}
			if updated != nl {
				e.grid.SetLight(nx, ny, nz, updated, markDirty)
				queue = append(queue, Seed{nx, ny, nz})
			}
		}
	}
}

// removalNode carrega, por canal, o valor que estava na célula antes de ser
// zerado; o BFS de remoção usa esse valor para decidir quem era alimentado
// por este nó.
type removalNode struct {
	x, y, z int32
	removed voxel.Light
}

// Remove zera os canais indicados na origem e desfaz tudo que era alimentado
// por ela. Vizinhos com valor igual ou maior que o removido têm fonte
// independente e entram numa fila de refill, que volta pela propagação comum
// ao final, reconstruindo luz que estava apenas sombreada pela fonte
// removida, sem varrer o mundo inteiro.
//
// channels é uma máscara de bits (1<<voxel.ChannelR etc.).
func (e *Engine) Remove(x, y, z int32, channels uint8) {
	old := e.grid.GetLight(x, y, z)
	var removed voxel.Light
	cleared := old
	for ch := 0; ch < voxel.ChannelCount; ch++ {
		if channels&(1<<uint(ch)) == 0 {
			continue
		}
		removed = removed.WithChannel(ch, old.Channel(ch))
		cleared = cleared.WithChannel(ch, 0)
	}
	if removed == 0 {
		return
	}
	e.grid.SetLight(x, y, z, cleared, true)

	queue := []removalNode{{x, y, z, removed}}
	var refill []Seed

	for head := 0; head < len(queue); head++ {
		cur := queue[head]

		for _, d := range dirs {
			nx, ny, nz := cur.x+d[0], cur.y+d[1], cur.z+d[2]
			nl := e.grid.GetLight(nx, ny, nz)
			if nl == 0 {
				continue
			}

			var nextRemoved voxel.Light
			updated := nl
			needsRefill := false

			for ch := 0; ch < voxel.ChannelCount; ch++ {
				rv := cur.removed.Channel(ch)
				if rv == 0 {
					continue
				}
				nv := nl.Channel(ch)
				if nv == 0 {
					continue
				}

				// Alimentado por este nó: valor exatamente um abaixo do
				// removido, ou skylight 15 descendo em shaft (sem decair).
				sourced := nv == rv-1 ||
					(ch == voxel.ChannelSky && isDown(d) && nv == voxel.MaxLight && rv == voxel.MaxLight)

				if sourced {
					nextRemoved = nextRemoved.WithChannel(ch, nv)
					updated = updated.WithChannel(ch, 0)
				} else if nv >= rv {
					// Fonte independente: re-propaga depois do drain.
					needsRefill = true
				}
			}

			// Se a própria célula é um emissor que estava sombreado pela
			// fonte removida, a luminância dele volta a valer agora.
			if nextRemoved != 0 {
				lum := e.reg.Luminance(e.grid.GetBlock(nx, ny, nz).ID)
				for ch := 0; ch < 3; ch++ {
					if nextRemoved.Channel(ch) != 0 && lum[ch] > updated.Channel(ch) {
						updated = updated.WithChannel(ch, lum[ch])
						needsRefill = true
					}
				}
			}

			if updated != nl {
				e.grid.SetLight(nx, ny, nz, updated, true)
			}
			if nextRemoved != 0 {
				queue = append(queue, removalNode{nx, ny, nz, nextRemoved})
			}
			if needsRefill {
				refill = append(refill, Seed{nx, ny, nz})
			}
		}
	}

	if len(refill) > 0 {
		e.Propagate(refill, true)
	}
}

// AllBlockChannels é a máscara dos três canais RGB de luz de bloco.
const AllBlockChannels uint8 = 1<<voxel.ChannelR | 1<<voxel.ChannelG | 1<<voxel.ChannelB

// AllChannels inclui também o skylight.
const AllChannels uint8 = AllBlockChannels | 1<<voxel.ChannelSky

// AddEmitter grava a luminância de um emissor na célula e propaga.
func (e *Engine) AddEmitter(x, y, z int32, lum [3]uint8) {
	l := e.grid.GetLight(x, y, z)
	changed := false
	for ch := 0; ch < 3; ch++ {
		if lum[ch] > l.Channel(ch) {
			l = l.WithChannel(ch, lum[ch])
			changed = true
		}
	}
	if !changed {
		return
	}
	e.grid.SetLight(x, y, z, l, true)
	e.Propagate([]Seed{{x, y, z}}, true)
}
