package light

import (
	"testing"

	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"
)

// testGrid é um grid esparso para exercitar o engine isolado. Um piso sólido
// em floorY limita a queda do skylight (um shaft em 15 desceria para sempre
// num grid sem fundo); fica fora do alcance dos testes de luz de bloco.
type testGrid struct {
	blocks map[[3]int32]voxel.Block
	light  map[[3]int32]voxel.Light
	floorY int32
}

func newTestGrid() *testGrid {
	return &testGrid{
		blocks: make(map[[3]int32]voxel.Block),
		light:  make(map[[3]int32]voxel.Light),
		floorY: -20,
	}
}

func (g *testGrid) GetBlock(x, y, z int32) voxel.Block {
	if y < g.floorY {
		return voxel.Block{ID: registry.Stone}
	}
	return g.blocks[[3]int32{x, y, z}]
}

func (g *testGrid) GetLight(x, y, z int32) voxel.Light {
	return g.light[[3]int32{x, y, z}]
}

func (g *testGrid) SetLight(x, y, z int32, l voxel.Light, _ bool) {
	if y < g.floorY {
		return
	}
	if l == 0 {
		delete(g.light, [3]int32{x, y, z})
		return
	}
	g.light[[3]int32{x, y, z}] = l
}

func manhattan(x, y, z int32) int32 {
	return util.Abs(x) + util.Abs(y) + util.Abs(z)
}

// Emissor RGB num vazio aberto: cada canal decai 1 por passo de distância
// Manhattan, simétrico nas 6 direções.
func TestEmitterDecaySymmetric(t *testing.T) {
	g := newTestGrid()
	e := New(g, registry.NewDefault())

	e.AddEmitter(0, 0, 0, [3]uint8{15, 13, 10})

	expect := func(base uint8, d int32) uint8 {
		if int32(base) <= d {
			return 0
		}
		return base - uint8(d)
	}

	for x := int32(-16); x <= 16; x += 4 {
		for y := int32(-16); y <= 16; y += 4 {
			for z := int32(-16); z <= 16; z += 4 {
				d := manhattan(x, y, z)
				l := g.GetLight(x, y, z)
				if l.R() != expect(15, d) || l.G() != expect(13, d) || l.B() != expect(10, d) {
					t.Fatalf("(%d,%d,%d) d=%d: R%d G%d B%d, esperado R%d G%d B%d",
						x, y, z, d, l.R(), l.G(), l.B(),
						expect(15, d), expect(13, d), expect(10, d))
				}
			}
		}
	}
}

// Luz não atravessa blocos opacos.
func TestPropagationBlockedByOpaque(t *testing.T) {
	g := newTestGrid()
	e := New(g, registry.NewDefault())

	// Parede de pedra em x=1 cobrindo o alcance todo
	for y := int32(-16); y <= 16; y++ {
		for z := int32(-16); z <= 16; z++ {
			g.blocks[[3]int32{1, y, z}] = voxel.Block{ID: registry.Stone}
		}
	}

	e.AddEmitter(0, 0, 0, [3]uint8{15, 15, 15})

	if l := g.GetLight(1, 0, 0); l != 0 {
		t.Errorf("luz dentro da parede: %v", l)
	}
	// Atrás da parede só chega contornando (fora do muro finito, aqui zero)
	if l := g.GetLight(2, 0, 0); l != 0 {
		t.Errorf("luz atravessou a parede: R%d", l.R())
	}
	// Na frente da parede a propagação é normal
	if l := g.GetLight(-3, 0, 0); l.R() != 12 {
		t.Errorf("R(-3,0,0) = %d, esperado 12", l.R())
	}
}

// Luz atravessa blocos transparentes (vidro).
func TestPropagationThroughGlass(t *testing.T) {
	g := newTestGrid()
	e := New(g, registry.NewDefault())

	g.blocks[[3]int32{1, 0, 0}] = voxel.Block{ID: registry.Glass}
	e.AddEmitter(0, 0, 0, [3]uint8{10, 0, 0})

	if l := g.GetLight(1, 0, 0); l.R() != 9 {
		t.Errorf("R no vidro = %d, esperado 9", l.R())
	}
	if l := g.GetLight(2, 0, 0); l.R() != 8 {
		t.Errorf("R atrás do vidro = %d, esperado 8", l.R())
	}
}

// Skylight no máximo desce coluna aberta sem decair; ao lado decai normal.
func TestSkylightShaft(t *testing.T) {
	g := newTestGrid()
	e := New(g, registry.NewDefault())

	g.SetLight(0, 32, 0, voxel.PackLight(0, 0, 0, 15), false)
	e.Propagate([]Seed{{0, 32, 0}}, false)

	for y := int32(32); y >= 0; y-- {
		if s := g.GetLight(0, y, 0).Sky(); s != 15 {
			t.Fatalf("Sky(0,%d,0) = %d, esperado 15 (shaft sem decaimento)", y, s)
		}
	}
	// Lateral decai 1
	if s := g.GetLight(1, 16, 0).Sky(); s != 14 {
		t.Errorf("Sky(1,16,0) = %d, esperado 14", s)
	}
	// E a partir da lateral, descer volta a decair
	if s := g.GetLight(1, 0, 0).Sky(); s != 14 {
		t.Errorf("Sky(1,0,0) = %d, esperado 14 (14 não é shaft)", s)
	}
	// O shaft para no piso
	if s := g.GetLight(0, g.floorY-1, 0).Sky(); s != 0 {
		t.Errorf("Sky dentro do piso = %d, esperado 0", s)
	}
}

// Remover o emissor restaura exatamente o estado anterior a ele.
func TestRemoveRestoresBaseline(t *testing.T) {
	reg := registry.NewDefault()
	g := newTestGrid()
	e := New(g, reg)

	// Fonte independente que permanece
	g.blocks[[3]int32{6, 0, 0}] = voxel.Block{ID: registry.Torch}
	e.AddEmitter(6, 0, 0, reg.Luminance(registry.Torch))

	baseline := make(map[[3]int32]voxel.Light, len(g.light))
	for k, v := range g.light {
		baseline[k] = v
	}

	// Segunda fonte, depois quebrada
	g.blocks[[3]int32{0, 0, 0}] = voxel.Block{ID: registry.Lamp}
	e.AddEmitter(0, 0, 0, reg.Luminance(registry.Lamp))

	delete(g.blocks, [3]int32{0, 0, 0})
	e.Remove(0, 0, 0, AllBlockChannels)

	if len(g.light) != len(baseline) {
		t.Fatalf("células iluminadas: %d, esperado %d", len(g.light), len(baseline))
	}
	for k, want := range baseline {
		if got := g.light[k]; got != want {
			t.Fatalf("célula %v: %v, esperado %v", k, got, want)
		}
	}
}

// A remoção re-propaga regiões que eram sombreadas pela fonte removida,
// inclusive um emissor mais fraco cuja luz estava totalmente encoberta.
func TestRemoveRefillsFromIndependentSource(t *testing.T) {
	reg := registry.NewDefault()
	g := newTestGrid()
	e := New(g, reg)

	// Lamp (15,15,15) na origem, Torch (14,12,8) a 4 de distância.
	// No canal B a tocha fica sombreada: 15-4 = 11 > 8.
	g.blocks[[3]int32{0, 0, 0}] = voxel.Block{ID: registry.Lamp}
	e.AddEmitter(0, 0, 0, reg.Luminance(registry.Lamp))
	g.blocks[[3]int32{4, 0, 0}] = voxel.Block{ID: registry.Torch}
	e.AddEmitter(4, 0, 0, reg.Luminance(registry.Torch))

	if l := g.GetLight(4, 0, 0); l.B() != 11 {
		t.Fatalf("B(4,0,0) = %d, esperado 11 (tocha sombreada)", l.B())
	}

	// Quebra a lamp
	delete(g.blocks, [3]int32{0, 0, 0})
	e.Remove(0, 0, 0, AllBlockChannels)

	// A tocha volta a valer nos três canais
	l := g.GetLight(4, 0, 0)
	if l.R() != 14 || l.G() != 12 || l.B() != 8 {
		t.Errorf("luz na tocha pós-remoção: R%d G%d B%d, esperado 14/12/8", l.R(), l.G(), l.B())
	}
	if l := g.GetLight(2, 0, 0); l.B() != 6 {
		t.Errorf("B(2,0,0) pós-remoção = %d, esperado 6", l.B())
	}
}

// Remoção seletiva por máscara só afeta os canais pedidos.
func TestRemoveChannelMask(t *testing.T) {
	g := newTestGrid()
	e := New(g, registry.NewDefault())

	e.AddEmitter(0, 0, 0, [3]uint8{15, 13, 10})
	e.Remove(0, 0, 0, 1<<voxel.ChannelG)

	l := g.GetLight(1, 0, 0)
	if l.G() != 0 {
		t.Errorf("G deveria ter sido removido, veio %d", l.G())
	}
	if l.R() != 14 || l.B() != 9 {
		t.Errorf("R/B não deveriam mudar: R%d B%d", l.R(), l.B())
	}
}
