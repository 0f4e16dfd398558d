package voxel

import "sync"

// Pools por classe de tamanho para os arrays de bloco e luz.
// Na taxa de criação/descarte que o streaming sustenta, alocar arrays de
// 64Ki voxels por chunk direto no heap vira pressão de GC; reciclamos.
var (
	blockPoolMu sync.Mutex
	blockPools  = make(map[int]*sync.Pool)

	lightPoolMu sync.Mutex
	lightPools  = make(map[int]*sync.Pool)
)

func acquireBlocks(n int) []Block {
	blockPoolMu.Lock()
	p, ok := blockPools[n]
	if !ok {
		p = &sync.Pool{New: func() interface{} { return make([]Block, n) }}
		blockPools[n] = p
	}
	blockPoolMu.Unlock()

	buf := p.Get().([]Block)
	for i := range buf {
		buf[i] = Block{}
	}
	return buf
}

func releaseBlocks(buf []Block) {
	if buf == nil {
		return
	}
	blockPoolMu.Lock()
	p, ok := blockPools[len(buf)]
	blockPoolMu.Unlock()
	if ok {
		p.Put(buf)
	}
}

func acquireLight(n int) []Light {
	lightPoolMu.Lock()
	p, ok := lightPools[n]
	if !ok {
		p = &sync.Pool{New: func() interface{} { return make([]Light, n) }}
		lightPools[n] = p
	}
	lightPoolMu.Unlock()

	buf := p.Get().([]Light)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

func releaseLight(buf []Light) {
	if buf == nil {
		return
	}
	lightPoolMu.Lock()
	p, ok := lightPools[len(buf)]
	lightPoolMu.Unlock()
	if ok {
		p.Put(buf)
	}
}
