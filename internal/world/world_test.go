package world

import (
	"testing"
	"time"

	"github.com/fkerimk/Xyloia/internal/gen"
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func testDims() voxel.Dims {
	return voxel.Dims{W: 16, H: 16, D: 16}
}

func flatOptions() Options {
	return Options{ViewDistance: 2, EvictMargin: 1, Workers: 2, Dims: testDims()}
}

func newFlatWorld() *World {
	return New(registry.NewDefault(), &gen.FlatGenerator{Floor: registry.Stone, Level: 0}, flatOptions())
}

// addChunk insere um chunk pronto diretamente no mapa, sem passar pelos
// workers; deixa os testes de edição determinísticos.
func (w *World) addChunk(pos util.ChunkPos) *voxel.Chunk {
	c := voxel.NewChunkDims(pos, w.opts.Dims)
	_ = w.gen.Generate(c, w.reg)
	w.mu.Lock()
	w.chunks[pos] = c
	w.mu.Unlock()
	return c
}

// seedChunks roda a semeadura de luz dos chunks dados, na ordem.
func (w *World) seedChunks(chunks ...*voxel.Chunk) {
	for _, c := range chunks {
		w.lights.Propagate(w.lights.SeedChunk(c), false)
	}
}

// addFlatArea insere uma área quadrada de chunks já iluminados.
func (w *World) addFlatArea(radius int32) {
	var all []*voxel.Chunk
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			all = append(all, w.addChunk(util.ChunkPos{X: cx, Z: cz}))
		}
	}
	w.seedChunks(all...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, step func()) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		step()
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("timeout esperando a condição")
}

func TestStreamingLoadsAroundCenter(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()

	center := util.ChunkPos{}
	want := len(buildSpiral(w.opts.ViewDistance))

	waitFor(t, 10*time.Second, func() bool {
		return w.ChunkCount() >= want
	}, func() {
		w.Update(center)
	})

	if !w.IsChunkLoaded(center) {
		t.Fatal("chunk central não carregou")
	}
	if !w.IsChunkLoaded(util.ChunkPos{X: 2}) {
		t.Fatal("chunk na borda do raio não carregou")
	}

	// Toda geração publica malha para upload
	uploads := 0
	waitFor(t, 10*time.Second, func() bool {
		uploads += w.DrainReady(50*time.Millisecond, func(pos util.ChunkPos, set voxel.MeshSet) {
			if set.Generation == 0 {
				t.Errorf("upload de %v sem geração atribuída", pos)
			}
			if len(set.Opaque) == 0 {
				t.Errorf("chunk plano %v sem geometria opaca", pos)
			}
		})
		return uploads >= want
	}, func() {
		w.Update(center)
	})
}

func TestEvictionBeyondViewDistance(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()

	origin := util.ChunkPos{}
	waitFor(t, 10*time.Second, func() bool {
		return w.IsChunkLoaded(origin)
	}, func() {
		w.Update(origin)
	})

	evicted := make(map[util.ChunkPos]bool)
	w.OnEvict = func(pos util.ChunkPos) { evicted[pos] = true }

	// Move o centro para longe; a varredura de eviction roda a cada 120 frames
	far := util.ChunkPos{X: 32, Z: 32}
	waitFor(t, 10*time.Second, func() bool {
		return !w.IsChunkLoaded(origin)
	}, func() {
		w.Update(far)
	})

	if !evicted[origin] {
		t.Error("OnEvict não foi chamado para o chunk descarregado")
	}
}

func TestEvictionDefersBufferRelease(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()

	far := util.ChunkPos{X: 40, Z: 40}
	c := w.addChunk(far)
	center := util.ChunkPos{}

	// Primeira varredura: sai do mapa, mas os buffers ficam vivos até a
	// próxima varredura (um worker pode ainda estar lendo o chunk).
	w.evict(center)
	if w.ChunkAt(far) != nil {
		t.Fatal("chunk continua residente após a eviction")
	}
	if len(w.retired) != 1 || w.retired[0] != c {
		t.Fatalf("retired = %d chunks, esperado o chunk descartado", len(w.retired))
	}
	if got := c.GetBlock(0, 0, 0); got.ID != registry.Stone {
		t.Fatalf("buffers liberados cedo demais: GetBlock = %+v", got)
	}

	// Segunda varredura sem vítimas novas: agora sim os buffers voltam ao pool.
	w.evict(center)
	if len(w.retired) != 0 {
		t.Fatalf("retired = %d chunks após a segunda varredura, esperado 0", len(w.retired))
	}
}

func TestSetBlockEmitterCascade(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()
	w.addFlatArea(1)

	// Skylight do piso plano
	if s := w.GetLight(8, 8, 8).Sky(); s != 15 {
		t.Fatalf("Sky(8,8,8) = %d, esperado 15", s)
	}

	w.SetBlock(8, 8, 8, voxel.Block{ID: registry.Lamp})

	if got := w.GetBlock(8, 8, 8); got.ID != registry.Lamp {
		t.Fatalf("GetBlock = %+v", got)
	}
	if r := w.GetLight(12, 8, 8).R(); r != 11 {
		t.Errorf("R(12,8,8) = %d, esperado 11 (15 - 4 passos)", r)
	}
	// A luz cruza a borda do chunk
	if r := w.GetLight(18, 8, 8).R(); r != 5 {
		t.Errorf("R(18,8,8) = %d, esperado 5", r)
	}

	// Quebra a lamp: luz de bloco some, o shaft de skylight reabre
	w.SetBlock(8, 8, 8, voxel.Block{})
	if r := w.GetLight(12, 8, 8).R(); r != 0 {
		t.Errorf("R(12,8,8) pós-quebra = %d, esperado 0", r)
	}
	if s := w.GetLight(8, 8, 8).Sky(); s != 15 {
		t.Errorf("Sky(8,8,8) pós-quebra = %d, esperado 15", s)
	}
	if s := w.GetLight(8, 1, 8).Sky(); s != 15 {
		t.Errorf("Sky(8,1,8) pós-quebra = %d, esperado 15 (shaft reaberto)", s)
	}
}

func TestSetBlockSchedulesNeighborRebuilds(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()
	w.addFlatArea(1)

	// Edição no interior: só o chunk dono
	w.SetBlock(8, 3, 8, voxel.Block{ID: registry.Stone})
	if !w.rebuilds.Contains(util.ChunkPos{}) {
		t.Error("chunk editado não entrou na fila de rebuild")
	}

	// Edição na borda oeste: o vizinho também
	w.SetBlock(0, 3, 8, voxel.Block{ID: registry.Stone})
	if !w.rebuilds.Contains(util.ChunkPos{X: -1}) {
		t.Error("vizinho da borda não entrou na fila de rebuild")
	}

	// Edição no canto: os três vizinhos que dividem o canto
	w.SetBlock(0, 3, 0, voxel.Block{ID: registry.Stone})
	for _, pos := range []util.ChunkPos{{X: -1}, {Z: -1}, {X: -1, Z: -1}} {
		if !w.rebuilds.Contains(pos) {
			t.Errorf("vizinho de canto %v não entrou na fila de rebuild", pos)
		}
	}
}

func TestBatchCoalescesRebuilds(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()
	c := w.addChunk(util.ChunkPos{})
	w.seedChunks(c)

	if w.rebuilds.Len() != 0 {
		t.Fatalf("fila de rebuild já tem %d entradas", w.rebuilds.Len())
	}

	// Várias edições interiores num mesmo escopo de batch: a cascata de luz
	// de cada uma colapsa num único pedido de rebuild.
	w.BeginBatch()
	w.SetBlock(5, 3, 5, voxel.Block{ID: registry.Stone})
	w.SetBlock(6, 3, 5, voxel.Block{ID: registry.Stone})
	w.SetBlock(7, 4, 7, voxel.Block{ID: registry.Stone})
	w.EndBatch()

	if n := w.rebuilds.Len(); n != 1 {
		t.Errorf("fila de rebuild com %d entradas, esperado 1", n)
	}
}

func TestGetTopBlockHeight(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()
	c := w.addChunk(util.ChunkPos{})
	w.seedChunks(c)

	if h := w.GetTopBlockHeight(4, 4); h != 0 {
		t.Errorf("altura do piso = %d, esperado 0", h)
	}

	w.SetBlock(4, 7, 4, voxel.Block{ID: registry.Stone})
	if h := w.GetTopBlockHeight(4, 4); h != 7 {
		t.Errorf("altura pós-edição = %d, esperado 7", h)
	}

	// Coluna não carregada é vazia
	if h := w.GetTopBlockHeight(100, 100); h != -1 {
		t.Errorf("altura fora do carregado = %d, esperado -1", h)
	}
}

func TestRaycast(t *testing.T) {
	w := newFlatWorld()
	defer w.Stop()
	c := w.addChunk(util.ChunkPos{})
	w.seedChunks(c)

	// Para baixo, no piso
	hit, ok := w.Raycast(util.Ray{
		Origin:    rl.Vector3{X: 8.5, Y: 5, Z: 8.5},
		Direction: rl.Vector3{Y: -1},
	}, 10)
	if !ok {
		t.Fatal("raio para baixo não atingiu o piso")
	}
	if hit.X != 8 || hit.Y != 0 || hit.Z != 8 {
		t.Errorf("voxel atingido: (%d,%d,%d), esperado (8,0,8)", hit.X, hit.Y, hit.Z)
	}
	if hit.Normal != (util.Offset{Y: 1}) {
		t.Errorf("normal: %+v, esperado +Y", hit.Normal)
	}

	// Lateral, num bloco colocado
	w.SetBlock(10, 3, 8, voxel.Block{ID: registry.Stone})
	hit, ok = w.Raycast(util.Ray{
		Origin:    rl.Vector3{X: 6.5, Y: 3.5, Z: 8.5},
		Direction: rl.Vector3{X: 1},
	}, 10)
	if !ok {
		t.Fatal("raio lateral não atingiu o bloco")
	}
	if hit.X != 10 || hit.Y != 3 || hit.Z != 8 {
		t.Errorf("voxel atingido: (%d,%d,%d), esperado (10,3,8)", hit.X, hit.Y, hit.Z)
	}
	if hit.Normal != (util.Offset{X: -1}) {
		t.Errorf("normal: %+v, esperado -X", hit.Normal)
	}

	// Raio que não cruza nada sólido dentro do alcance
	if _, ok := w.Raycast(util.Ray{
		Origin:    rl.Vector3{X: 8, Y: 5, Z: 8},
		Direction: rl.Vector3{Y: 1},
	}, 10); ok {
		t.Error("raio para cima não deveria atingir nada")
	}
}
