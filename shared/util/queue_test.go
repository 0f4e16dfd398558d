package util

import (
	"sync"
	"testing"
)

func TestUniqueQueueDedup(t *testing.T) {
	q := NewUniqueQueue[ChunkPos, int]()

	if !q.Enqueue(ChunkPos{X: 1}, 10) {
		t.Error("primeira inserção deveria retornar true")
	}
	if q.Enqueue(ChunkPos{X: 1}, 20) {
		t.Error("chave repetida deveria retornar false")
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, esperado 1", q.Len())
	}

	// Valor atualizado na re-inserção
	_, v, ok := q.Dequeue()
	if !ok || v != 20 {
		t.Errorf("Dequeue = (%d, %v), esperado (20, true)", v, ok)
	}

	// Depois do Dequeue a chave pode entrar de novo
	if !q.Enqueue(ChunkPos{X: 1}, 30) {
		t.Error("chave removida deveria poder re-entrar")
	}
}

func TestUniqueQueueFIFO(t *testing.T) {
	q := NewUniqueQueue[int, string]()
	q.Enqueue(1, "a")
	q.Enqueue(2, "b")
	q.Enqueue(3, "c")

	for _, want := range []int{1, 2, 3} {
		k, _, ok := q.Dequeue()
		if !ok || k != want {
			t.Fatalf("Dequeue = (%d, %v), esperado %d", k, ok, want)
		}
	}
	if _, _, ok := q.Dequeue(); ok {
		t.Error("fila vazia deveria retornar false")
	}
}

func TestUniqueQueueContains(t *testing.T) {
	q := NewUniqueQueue[int, struct{}]()
	q.Enqueue(5, struct{}{})
	if !q.Contains(5) {
		t.Error("Contains(5) deveria ser true")
	}
	q.Dequeue()
	if q.Contains(5) {
		t.Error("Contains após Dequeue deveria ser false")
	}
}

func TestThreadSafeQueueConcurrent(t *testing.T) {
	q := NewThreadSafeQueue[int]()

	const writers = 8
	const perWriter = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	if q.Len() != writers*perWriter {
		t.Fatalf("Len = %d, esperado %d", q.Len(), writers*perWriter)
	}

	n := 0
	for {
		if _, ok := q.Pop(); !ok {
			break
		}
		n++
	}
	if n != writers*perWriter {
		t.Errorf("Pop drenou %d itens, esperado %d", n, writers*perWriter)
	}
}
