package meshing

import (
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// cornerLight calcula os quatro nibbles de cor de um canto de face.
// Amostra a célula à frente da face (centro), os dois vizinhos de aresta e o
// diagonal; se ambas as arestas são sólidas o canto está ocluído: o
// diagonal é descartado e o centro entra em dobro, escurecendo o canto.
// Cada canal é tirado por média com arredondamento para o mais próximo.
func (nb *Neighborhood) cornerLight(face, corner int, x, y, z int32) [4]uint8 {
	d := faceDirs[face]
	fx, fy, fz := x+d[0], y+d[1], z+d[2]

	su := cornerSigns[corner][0]
	sv := cornerSigns[corner][1]
	u := faceUInt[face]
	v := faceVInt[face]
	e1 := [3]int32{u[0] * su, u[1] * su, u[2] * su}
	e2 := [3]int32{v[0] * sv, v[1] * sv, v[2] * sv}

	center := nb.Light(fx, fy, fz)
	side1 := nb.Light(fx+e1[0], fy+e1[1], fz+e1[2])
	side2 := nb.Light(fx+e2[0], fy+e2[1], fz+e2[2])
	diag := nb.Light(fx+e1[0]+e2[0], fy+e1[1]+e2[1], fz+e1[2]+e2[2])

	if nb.Solid(fx+e1[0], fy+e1[1], fz+e1[2]) && nb.Solid(fx+e2[0], fy+e2[1], fz+e2[2]) {
		diag = center
	}

	var out [4]uint8
	for ch := 0; ch < voxel.ChannelCount; ch++ {
		sum := uint16(center.Channel(ch)) + uint16(side1.Channel(ch)) +
			uint16(side2.Channel(ch)) + uint16(diag.Channel(ch))
		out[ch] = uint8((sum + 2) >> 2)
	}
	return out
}

// faceCornerColors devolve as cores dos 4 cantos (BL,BR,TR,TL) já escaladas
// para bytes, e a escolha de diagonal: a divisão que emparelha os dois
// cantos mais claros.
func (nb *Neighborhood) faceCornerColors(face int, x, y, z int32) (colors [4][4]uint8, flipDiagonal bool) {
	var brightness [4]uint16
	for corner := 0; corner < 4; corner++ {
		nibbles := nb.cornerLight(face, corner, x, y, z)
		for ch := 0; ch < 4; ch++ {
			// Nibble 0..15 escalado para 0..255
			colors[corner][ch] = nibbles[ch] * 17
			brightness[corner] += uint16(nibbles[ch])
		}
	}
	// Diagonal 0-2 contra 1-3: fica com a mais clara.
	flipDiagonal = brightness[0]+brightness[2] < brightness[1]+brightness[3]
	return
}

// encasementLimit é o teto de nós visitados pelo BFS de encapsulamento.
// Estourar o limite trata o voxel como potencialmente visível (nunca culla
// por excesso); troca deliberada de precisão por custo.
const encasementLimit = 64

// encased prova, com um BFS limitado através de células não-opacas, que o
// voxel está completamente fechado e não contribui geometria. Alcançar o céu
// acima do topo do mundo ou sair da vizinhança carregada conta como ar
// aberto (não culla).
func (nb *Neighborhood) encased(x, y, z int32) bool {
	type cell struct{ x, y, z int32 }

	dims := nb.Target.Dims
	visited := make(map[cell]bool, encasementLimit)
	var queue []cell

	// Fronteira inicial: vizinhos diretos não-opacos.
	for _, d := range faceDirs {
		nx, ny, nz := x+d[0], y+d[1], z+d[2]
		if !nb.Opaque(nx, ny, nz) {
			queue = append(queue, cell{nx, ny, nz})
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if len(visited) > encasementLimit {
			return false
		}

		// Saiu do volume coberto pela vizinhança (alvo ± 1 chunk) ou subiu
		// acima do topo do mundo: ar aberto.
		if cur.y >= dims.H || cur.y < -dims.H ||
			cur.x >= 2*dims.W || cur.x < -dims.W ||
			cur.z >= 2*dims.D || cur.z < -dims.D {
			return false
		}

		for _, d := range faceDirs {
			next := cell{cur.x + d[0], cur.y + d[1], cur.z + d[2]}
			if visited[next] {
				continue
			}
			if !nb.Opaque(next.x, next.y, next.z) {
				queue = append(queue, next)
			}
		}
	}

	// O BFS drenou sem alcançar ar aberto: toda a fronteira é parede opaca.
	return true
}
