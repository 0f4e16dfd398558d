// Package world mantém o mapa de chunks carregados, a API global de
// bloco/luz em coordenadas de mundo, e o ciclo de vida concorrente de cada
// chunk: geração, meshing, upload e eviction.
package world

import (
	"runtime"
	"sync"

	"github.com/fkerimk/Xyloia/internal/gen"
	"github.com/fkerimk/Xyloia/internal/light"
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"
)

// Options controla o streaming do mundo.
type Options struct {
	ViewDistance int32 // Raio em chunks mantido carregado
	EvictMargin  int32 // Histerese além do raio antes de descarregar
	Workers      int   // 0 = NumCPU-2
	Dims         voxel.Dims
}

// World é o dono do mapa de chunks e do agendamento de trabalho.
// Toda mutação de gameplay (SetBlock e afins) acontece na thread principal;
// os workers só escrevem em chunks que ainda não estão no mapa ou publicam
// malha através do lock próprio do chunk.
type World struct {
	reg *registry.Registry
	gen gen.Generator

	mu     sync.RWMutex
	chunks map[util.ChunkPos]*voxel.Chunk

	// Posições em geração (dedup): no estado "generating" o chunk ainda não
	// está no mapa.
	processingMu sync.Mutex
	processing   map[util.ChunkPos]bool

	// Chunks com malha nova aguardando upload pela thread principal.
	uploadQueue *util.ThreadSafeQueue[util.ChunkPos]

	// Rebuilds pendentes, deduplicados por posição.
	rebuilds *util.UniqueQueue[util.ChunkPos, struct{}]

	// Modo batch: coalesce os pedidos de rebuild disparados pela cascata de
	// luz de uma edição num único conjunto deduplicado.
	batchMu    sync.Mutex
	batchDepth int
	batchSet   map[util.ChunkPos]struct{}

	lights *light.Engine

	tasks chan task
	stop  chan struct{}

	spiral []util.ChunkPos

	opts Options

	// OnEvict é chamado na thread principal para cada chunk descarregado
	// (libera os recursos de GPU correspondentes).
	OnEvict func(util.ChunkPos)

	// Descartados na varredura anterior, aguardando uma varredura inteira
	// antes de devolver os buffers ao pool: um worker pode ainda estar
	// amostrando o chunk numa Neighborhood em voo no momento da eviction.
	// Só a thread principal toca (evict e Stop).
	retired []*voxel.Chunk

	frame int64
}

// New cria o mundo e inicia o pool de workers.
func New(reg *registry.Registry, generator gen.Generator, opts Options) *World {
	if opts.Dims.Volume() == 0 {
		opts.Dims = voxel.DefaultDims()
	}
	if opts.ViewDistance <= 0 {
		opts.ViewDistance = 8
	}
	if opts.EvictMargin <= 0 {
		opts.EvictMargin = 2
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU() - 2
		if opts.Workers < 1 {
			opts.Workers = 1
		}
	}

	w := &World{
		reg:         reg,
		gen:         generator,
		chunks:      make(map[util.ChunkPos]*voxel.Chunk),
		processing:  make(map[util.ChunkPos]bool),
		uploadQueue: util.NewThreadSafeQueue[util.ChunkPos](),
		rebuilds:    util.NewUniqueQueue[util.ChunkPos, struct{}](),
		batchSet:    make(map[util.ChunkPos]struct{}),
		tasks:       make(chan task, 2048),
		stop:        make(chan struct{}),
		opts:        opts,
		spiral:      buildSpiral(opts.ViewDistance),
	}
	w.lights = light.New(w, reg)

	for i := 0; i < opts.Workers; i++ {
		go w.worker()
	}
	return w
}

// Stop encerra os workers.
func (w *World) Stop() {
	close(w.stop)
	for _, c := range w.retired {
		c.Release()
	}
	w.retired = nil
}

// Registry expõe o registro imutável do mundo.
func (w *World) Registry() *registry.Registry {
	return w.reg
}

// Lights expõe o engine de luz (testes e colaboradores).
func (w *World) Lights() *light.Engine {
	return w.lights
}

// ChunkAt retorna o chunk carregado na posição, ou nil.
func (w *World) ChunkAt(pos util.ChunkPos) *voxel.Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[pos]
}

// IsChunkLoaded informa se a posição está presente e consultável.
func (w *World) IsChunkLoaded(pos util.ChunkPos) bool {
	return w.ChunkAt(pos) != nil
}

// ChunkCount retorna o número de chunks residentes.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// split resolve uma coordenada de mundo em chunk + coordenada local.
func (w *World) split(x, y, z int32) (util.ChunkPos, int32, int32, int32) {
	d := w.opts.Dims
	pos := util.NewChunkPos(util.FloorDiv(x, d.W), util.FloorDiv(y, d.H), util.FloorDiv(z, d.D))
	return pos, x - pos.X*d.W, y - pos.Y*d.H, z - pos.Z*d.D
}

// GetBlock retorna o bloco em coordenadas de mundo (ar se não carregado).
func (w *World) GetBlock(x, y, z int32) voxel.Block {
	pos, lx, ly, lz := w.split(x, y, z)
	c := w.ChunkAt(pos)
	if c == nil {
		return voxel.Block{}
	}
	return c.GetBlock(lx, ly, lz)
}

// GetLight retorna a luz em coordenadas de mundo (0 se não carregado).
func (w *World) GetLight(x, y, z int32) voxel.Light {
	pos, lx, ly, lz := w.split(x, y, z)
	c := w.ChunkAt(pos)
	if c == nil {
		return 0
	}
	return c.GetLight(lx, ly, lz)
}

// SetLight grava luz em coordenadas de mundo; no-op se o chunk dono não está
// carregado. Implementa light.Grid: com markDirty o chunk entra no conjunto
// de rebuilds pendentes.
func (w *World) SetLight(x, y, z int32, l voxel.Light, markDirty bool) {
	pos, lx, ly, lz := w.split(x, y, z)
	c := w.ChunkAt(pos)
	if c == nil {
		return
	}
	if markDirty {
		c.SetLight(lx, ly, lz, l)
		w.noteDirty(pos)
	} else {
		c.SetLightSilent(lx, ly, lz, l)
	}
}

// SetBlock aplica uma edição de gameplay: atualiza o chunk local, roda
// adição/remoção de luz conforme necessário e agenda rebuild do chunk
// editado e de todo vizinho que compartilha a borda tocada (mantém o
// culling cross-chunk e o AO consistentes).
func (w *World) SetBlock(x, y, z int32, b voxel.Block) {
	pos, lx, ly, lz := w.split(x, y, z)
	c := w.ChunkAt(pos)
	if c == nil {
		return
	}
	old := c.GetBlock(lx, ly, lz)
	if old == b {
		return
	}

	w.BeginBatch()
	defer w.EndBatch()

	c.SetBlock(lx, ly, lz, b)

	oldDef := w.reg.Block(old.ID)
	newDef := w.reg.Block(b.ID)

	if oldDef.Luminous() {
		w.lights.Remove(x, y, z, light.AllBlockChannels)
	}
	switch {
	case newDef.Opaque && !oldDef.Opaque:
		// Bloco opaco colocado onde havia luz: remove todos os canais.
		w.lights.Remove(x, y, z, light.AllChannels)
	case !newDef.Opaque && oldDef.Opaque:
		w.relightOpened(x, y, z)
	}
	if newDef.Luminous() {
		w.lights.AddEmitter(x, y, z, newDef.Luminance)
	}

	w.scheduleEditRebuilds(pos, lx, ly, lz)
}

// relightOpened re-ilumina uma célula que deixou de ser opaca: puxa luz dos
// seis vizinhos e reabre o shaft de skylight se a coluna acima está livre.
func (w *World) relightOpened(x, y, z int32) {
	d := w.opts.Dims
	seeds := []light.Seed{
		{X: x + 1, Y: y, Z: z}, {X: x - 1, Y: y, Z: z},
		{X: x, Y: y + 1, Z: z}, {X: x, Y: y - 1, Z: z},
		{X: x, Y: y, Z: z + 1}, {X: x, Y: y, Z: z - 1},
	}

	open := true
	for yy := y + 1; yy < d.H; yy++ {
		if w.reg.IsOpaque(w.GetBlock(x, yy, z).ID) {
			open = false
			break
		}
	}
	if open {
		l := w.GetLight(x, y, z).WithChannel(voxel.ChannelSky, voxel.MaxLight)
		w.SetLight(x, y, z, l, true)
		seeds = append(seeds, light.Seed{X: x, Y: y, Z: z})
	}

	w.lights.Propagate(seeds, true)
}

// scheduleEditRebuilds agenda o chunk editado mais cada vizinho que divide a
// face/aresta/canto tocado pela edição: as bordas tocadas viram uma máscara
// de direções, incluindo a diagonal quando duas bordas são tocadas juntas.
func (w *World) scheduleEditRebuilds(pos util.ChunkPos, lx, ly, lz int32) {
	d := w.opts.Dims
	w.noteDirty(pos)

	var touched util.Directions
	if lx == 0 {
		touched |= util.DirWest
	} else if lx == d.W-1 {
		touched |= util.DirEast
	}
	if lz == 0 {
		touched |= util.DirNorth
	} else if lz == d.D-1 {
		touched |= util.DirSouth
	}
	switch touched {
	case util.DirWest | util.DirNorth:
		touched |= util.DirNorthWest
	case util.DirWest | util.DirSouth:
		touched |= util.DirSouthWest
	case util.DirEast | util.DirNorth:
		touched |= util.DirNorthEast
	case util.DirEast | util.DirSouth:
		touched |= util.DirSouthEast
	}
	if touched == util.DirNone {
		return
	}

	for dir, off := range util.DirOffsets {
		if touched&dir == 0 || off.Y != 0 {
			continue
		}
		n := pos.Add(util.ChunkPos{X: off.X, Z: off.Z})
		if c := w.ChunkAt(n); c != nil {
			c.MarkDirty()
			w.noteDirty(n)
		}
	}
}

// BeginBatch abre um escopo de coalescência de rebuilds. Aninhável.
func (w *World) BeginBatch() {
	w.batchMu.Lock()
	w.batchDepth++
	w.batchMu.Unlock()
}

// EndBatch fecha o escopo; no fechamento do escopo mais externo o conjunto
// deduplicado inteiro vira pedidos de rebuild assíncronos.
func (w *World) EndBatch() {
	w.batchMu.Lock()
	w.batchDepth--
	var flush map[util.ChunkPos]struct{}
	if w.batchDepth == 0 && len(w.batchSet) > 0 {
		flush = w.batchSet
		w.batchSet = make(map[util.ChunkPos]struct{})
	}
	w.batchMu.Unlock()

	for pos := range flush {
		w.requestRebuild(pos)
	}
}

// noteDirty registra um pedido de rebuild, coalescido se houver batch aberto.
func (w *World) noteDirty(pos util.ChunkPos) {
	w.batchMu.Lock()
	if w.batchDepth > 0 {
		w.batchSet[pos] = struct{}{}
		w.batchMu.Unlock()
		return
	}
	w.batchMu.Unlock()
	w.requestRebuild(pos)
}

// GetTopBlockHeight retorna o y do bloco não-ar mais alto da coluna
// (-1 se a coluna está vazia ou não carregada).
func (w *World) GetTopBlockHeight(x, z int32) int32 {
	d := w.opts.Dims
	for y := d.H - 1; y >= 0; y-- {
		if !w.GetBlock(x, y, z).IsAir() {
			return y
		}
	}
	return -1
}
