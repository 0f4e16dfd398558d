package world

import (
	"log"
	"sort"
	"time"

	"github.com/fkerimk/Xyloia/internal/meshing"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/shared/util"
)

// task é uma unidade de trabalho do pool: gerar um chunk novo ou
// reconstruir a malha de um residente.
type task struct {
	pos     util.ChunkPos
	rebuild bool
	center  util.ChunkPos // Centro da câmera no momento do agendamento
}

// buildSpiral pré-computa os offsets de chunk dentro do raio, ordenados por
// distância quadrada: o scan por frame anda de dentro para fora.
func buildSpiral(radius int32) []util.ChunkPos {
	var offsets []util.ChunkPos
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz <= radius*radius {
				offsets = append(offsets, util.ChunkPos{X: dx, Z: dz})
			}
		}
	}
	sort.Slice(offsets, func(i, j int) bool {
		di := offsets[i].X*offsets[i].X + offsets[i].Z*offsets[i].Z
		dj := offsets[j].X*offsets[j].X + offsets[j].Z*offsets[j].Z
		return di < dj
	})
	return offsets
}

// Update roda uma vez por frame na thread principal: agenda geração das
// posições descobertas pelo scan espiral, escoa os rebuilds pendentes e
// periodicamente descarrega chunks fora do raio + histerese.
func (w *World) Update(center util.ChunkPos) {
	w.frame++
	w.stream(center)
	w.drainRebuilds(center)

	if w.frame%120 == 0 {
		w.evict(center)
	}
}

// stream agenda geração para posições vazias dentro do raio de visão.
func (w *World) stream(center util.ChunkPos) {
	for _, off := range w.spiral {
		pos := util.NewChunkPos(center.X+off.X, 0, center.Z+off.Z)
		if w.IsChunkLoaded(pos) {
			continue
		}

		w.processingMu.Lock()
		if w.processing[pos] {
			w.processingMu.Unlock()
			continue
		}
		w.processing[pos] = true
		w.processingMu.Unlock()

		select {
		case w.tasks <- task{pos: pos, center: center}:
		default:
			// Fila cheia: desiste desta posição e tenta no próximo frame.
			w.processingMu.Lock()
			delete(w.processing, pos)
			w.processingMu.Unlock()
			return
		}
	}
}

// drainRebuilds move os rebuilds pendentes para o pool (dedup já garantido
// pela UniqueQueue; o processing set evita duplicar com gerações em voo).
func (w *World) drainRebuilds(center util.ChunkPos) {
	for {
		pos, _, ok := w.rebuilds.Dequeue()
		if !ok {
			return
		}
		if !w.IsChunkLoaded(pos) {
			continue
		}
		select {
		case w.tasks <- task{pos: pos, rebuild: true, center: center}:
		default:
			// Devolve e tenta no próximo frame.
			w.rebuilds.Enqueue(pos, struct{}{})
			return
		}
	}
}

// requestRebuild agenda a reconstrução da malha de um chunk residente.
func (w *World) requestRebuild(pos util.ChunkPos) {
	w.rebuilds.Enqueue(pos, struct{}{})
}

// worker consome tasks até o Stop. Um panic numa task descarta o chunk da
// task e nunca derruba o pool ou o trabalho em voo dos outros workers.
func (w *World) worker() {
	for {
		select {
		case t := <-w.tasks:
			w.runTask(t)
		case <-w.stop:
			return
		}
	}
}

func (w *World) runTask(t task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Worker do mundo em %s: %v", t.pos.String(), r)
			w.processingMu.Lock()
			delete(w.processing, t.pos)
			w.processingMu.Unlock()
		}
	}()

	if t.rebuild {
		w.rebuildChunk(t.pos)
		return
	}
	w.generateChunk(t)
}

// generateChunk executa o pipeline completo de um chunk novo: terreno,
// re-checagem de distância, inserção atômica, semeadura + propagação de
// luz, malha inicial e rebuild dos vizinhos recém-expostos.
func (w *World) generateChunk(t task) {
	defer func() {
		w.processingMu.Lock()
		delete(w.processing, t.pos)
		w.processingMu.Unlock()
	}()

	c := voxel.NewChunkDims(t.pos, w.opts.Dims)
	if err := w.gen.Generate(c, w.reg); err != nil {
		log.Printf("[World] Geração de %s falhou: %v", t.pos.String(), err)
		c.Release()
		return
	}

	// A câmera pode ter saído do alcance durante a geração: descarta.
	// Cancelamento é implícito; não há token cooperativo.
	if t.pos.DistSq(t.center) > w.opts.ViewDistance*w.opts.ViewDistance {
		c.Release()
		return
	}

	// Inserção atômica: perder a corrida descarta o chunk gerado.
	w.mu.Lock()
	if _, exists := w.chunks[t.pos]; exists {
		w.mu.Unlock()
		c.Release()
		return
	}
	w.chunks[t.pos] = c
	w.mu.Unlock()

	// Semeadura silenciosa: o build inicial logo abaixo cobre o chunk todo.
	seeds := w.lights.SeedChunk(c)
	w.lights.Propagate(seeds, false)

	w.buildAndPublish(c)

	// Um chunk recém-carregado pode desocultar faces nos vizinhos.
	for _, d := range util.NeighborDirs {
		n := t.pos.Add(d)
		if nc := w.ChunkAt(n); nc != nil {
			nc.MarkDirty()
			w.requestRebuild(n)
		}
	}
}

// rebuildChunk reconstrói a malha de um chunk residente.
func (w *World) rebuildChunk(pos util.ChunkPos) {
	c := w.ChunkAt(pos)
	if c == nil {
		return
	}
	w.buildAndPublish(c)
}

// buildAndPublish roda o mesher contra os vizinhos atuais e publica o
// resultado para a thread principal consumir.
func (w *World) buildAndPublish(c *voxel.Chunk) {
	c.ClearDirty()
	nb := meshing.NewNeighborhood(c, w.reg, w.ChunkAt)
	set := meshing.BuildChunk(nb)
	c.PublishMesh(set)
	w.uploadQueue.Push(c.Pos)
}

// DrainReady consome a fila de upload na thread principal sob um orçamento
// de tempo: o excesso espera o próximo frame em vez de travar o loop
// (backpressure suave, mecanismo de justiça e não de correção).
func (w *World) DrainReady(budget time.Duration, upload func(pos util.ChunkPos, set voxel.MeshSet)) int {
	start := time.Now()
	n := 0
	for {
		if time.Since(start) > budget {
			return n
		}
		pos, ok := w.uploadQueue.Pop()
		if !ok {
			return n
		}
		c := w.ChunkAt(pos)
		if c == nil {
			continue
		}
		if set, ok := c.TakeMesh(); ok {
			upload(pos, set)
			n++
		}
	}
}

// evictBatchLimit limita quantos chunks saem por varredura de eviction.
const evictBatchLimit = 32

// evict descarrega um lote limitado de chunks além do raio + histerese:
// remove do mapa e avisa o dono dos recursos de GPU via OnEvict. Os buffers
// voltam ao pool só na varredura seguinte, quando qualquer Neighborhood em
// voo que ainda os referenciava já terminou.
func (w *World) evict(center util.ChunkPos) {
	limit := w.opts.ViewDistance + w.opts.EvictMargin
	limitSq := limit * limit

	var victims []*voxel.Chunk
	w.mu.Lock()
	for pos, c := range w.chunks {
		flat := util.ChunkPos{X: pos.X, Z: pos.Z}
		if flat.DistSq(util.ChunkPos{X: center.X, Z: center.Z}) > limitSq {
			victims = append(victims, c)
			delete(w.chunks, pos)
			if len(victims) >= evictBatchLimit {
				break
			}
		}
	}
	w.mu.Unlock()

	for _, c := range w.retired {
		c.Release()
	}
	w.retired = victims

	for _, c := range victims {
		if w.OnEvict != nil {
			w.OnEvict(c.Pos)
		}
	}
	if len(victims) > 0 {
		log.Printf("[World] Eviction: %d chunks descarregados (%d residentes)", len(victims), w.ChunkCount())
	}
}
