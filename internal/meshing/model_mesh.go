package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/voxel"
)

// emitModel gera a geometria de um bloco com modelo JSON (possivelmente
// multi-elemento), aplicando a rotação do bloco e a rotação declarada por
// elemento.
func (nb *Neighborhood) emitModel(dst *Builder, def *registry.BlockDef, model *registry.Model, orient orientation, x, y, z int32) {
	b := nb.Target.GetBlock(x, y, z)

	for ei := range model.Elements {
		el := &model.Elements[ei]

		// Caixa do elemento em unidades de bloco (modelo declara 0..16).
		from := [3]float32{el.From[0] / 16, el.From[1] / 16, el.From[2] / 16}
		to := [3]float32{el.To[0] / 16, el.To[1] / 16, el.To[2] / 16}

		if el.Rotation == nil && orient.axisAligned {
			// Caminho barato: rotação exatamente alinhada aos eixos.
			// Transformamos os 8 cantos e tomamos o envelope alinhado.
			if orient.hasMatrix {
				from, to = rotateBounds(orient.matrix, from, to)
			}
			nb.emitBoxFaces(dst, def, b, el, orient, from, to, x, y, z)
			continue
		}

		// Rotação arbitrária (pivô/eixo/ângulo do modelo, ou yaw fora de
		// 90°): transformação completa por vértice.
		nb.emitRotatedElement(dst, def, b, el, orient, from, to, x, y, z)
	}
}

// rotateBounds transforma os 8 cantos da caixa e devolve o envelope AABB.
func rotateBounds(m mgl32.Mat4, from, to [3]float32) ([3]float32, [3]float32) {
	lo := [3]float32{1e9, 1e9, 1e9}
	hi := [3]float32{-1e9, -1e9, -1e9}
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{
			pick(i&1 != 0, to[0], from[0]),
			pick(i&2 != 0, to[1], from[1]),
			pick(i&4 != 0, to[2], from[2]),
		}
		r := mgl32.TransformCoordinate(corner, m)
		for a := 0; a < 3; a++ {
			if r[a] < lo[a] {
				lo[a] = r[a]
			}
			if r[a] > hi[a] {
				hi[a] = r[a]
			}
		}
	}
	return lo, hi
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

// emitBoxFaces emite as faces de uma caixa alinhada aos eixos (já no
// referencial do mundo); a textura de cada face do mundo vem da face do
// modelo correspondente após a rotação do bloco.
func (nb *Neighborhood) emitBoxFaces(dst *Builder, def *registry.BlockDef, b voxel.Block, el *registry.ModelElement, orient orientation, from, to [3]float32, x, y, z int32) {
	for face := 0; face < faceCount; face++ {
		mf := orient.faceMap[face]
		decl, ok := el.Faces[registry.FaceNames[mf]]
		if !ok {
			continue
		}

		if nb.faceCulled(decl, def, b, orient, x, y, z) {
			continue
		}

		verts := boxFaceCorners(face, from, to)
		for i := range verts {
			verts[i][0] += float32(x)
			verts[i][1] += float32(y)
			verts[i][2] += float32(z)
		}

		colors, flip := nb.modelFaceColors(face, from, to, x, y, z)
		uv := rotateUV(faceUVRect(decl.UV), decl.Rotation)
		dst.AddQuad(verts, faceNormals[face], uv, colors, flip)
	}
}

// emitRotatedElement transforma cada vértice pela matriz composta
// (rotação do elemento, depois rotação do bloco).
func (nb *Neighborhood) emitRotatedElement(dst *Builder, def *registry.BlockDef, b voxel.Block, el *registry.ModelElement, orient orientation, from, to [3]float32, x, y, z int32) {
	m := mgl32.Ident4()
	if orient.hasMatrix {
		m = orient.matrix
	}
	if el.Rotation != nil {
		m = m.Mul4(elementRotationMatrix(el.Rotation))
	}
	normalM := m.Mat3()

	for face := 0; face < faceCount; face++ {
		mf := orient.faceMap[face]
		decl, ok := el.Faces[registry.FaceNames[mf]]
		if !ok {
			continue
		}

		if nb.faceCulled(decl, def, b, orient, x, y, z) {
			continue
		}

		// A face declarada vive na caixa não-rotacionada do modelo.
		verts := boxFaceCorners(mf, from, to)
		for i := range verts {
			r := mgl32.TransformCoordinate(mgl32.Vec3{verts[i][0], verts[i][1], verts[i][2]}, m)
			verts[i] = [3]float32{r[0] + float32(x), r[1] + float32(y), r[2] + float32(z)}
		}

		n := normalM.Mul3x1(mgl32.Vec3{faceNormals[mf][0], faceNormals[mf][1], faceNormals[mf][2]}).Normalize()

		colors, flip := nb.modelFaceColors(face, from, to, x, y, z)
		uv := rotateUV(faceUVRect(decl.UV), decl.Rotation)
		dst.AddQuad(verts, [3]float32{n[0], n[1], n[2]}, uv, colors, flip)
	}
}

// elementRotationMatrix monta a rotação declarada de um elemento:
// pivô em unidades 0..16, eixo x/y/z, ângulo em graus.
func elementRotationMatrix(r *registry.ElementRotation) mgl32.Mat4 {
	var axis mgl32.Vec3
	switch r.Axis {
	case "x":
		axis = mgl32.Vec3{1, 0, 0}
	case "z":
		axis = mgl32.Vec3{0, 0, 1}
	default:
		axis = mgl32.Vec3{0, 1, 0}
	}
	pivot := mgl32.Vec3{r.Origin[0] / 16, r.Origin[1] / 16, r.Origin[2] / 16}
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(r.Angle), axis)
	return mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(rot).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}

// faceCulled aplica a máscara de cull declarada no modelo: a direção do
// cullface (no referencial do modelo) é levada para o mundo pela rotação do
// bloco e a face some se o vizinho naquela direção a oclui.
func (nb *Neighborhood) faceCulled(decl registry.ModelFace, def *registry.BlockDef, b voxel.Block, orient orientation, x, y, z int32) bool {
	if decl.CullFace == "" {
		return false
	}
	cd, ok := registry.FaceDirNames[decl.CullFace]
	if !ok {
		return false
	}
	world := orient.invFaceMap[int(cd)]
	d := faceDirs[world]
	return nb.shouldCullFace(def, b, nb.Block(x+d[0], y+d[1], z+d[2]))
}

// modelFaceColors escolhe a iluminação da face de um elemento: faces
// encostadas na borda da célula usam a amostragem de canto com oclusão
// (mesma do cubo); faces internas usam a luz do centro da própria célula.
func (nb *Neighborhood) modelFaceColors(face int, from, to [3]float32, x, y, z int32) ([4][4]uint8, bool) {
	if boxFaceOnCellBoundary(face, from, to) {
		return nb.faceCornerColors(face, x, y, z)
	}

	l := nb.Light(x, y, z)
	var c [4]uint8
	for ch := 0; ch < 4; ch++ {
		c[ch] = l.Channel(ch) * 17
	}
	return [4][4]uint8{c, c, c, c}, false
}

// boxFaceOnCellBoundary verifica se a face da caixa coincide com a borda da
// célula na direção da sua normal.
func boxFaceOnCellBoundary(face int, from, to [3]float32) bool {
	const eps = 1e-4
	switch face {
	case faceEast:
		return to[0] > 1-eps
	case faceWest:
		return from[0] < eps
	case faceUp:
		return to[1] > 1-eps
	case faceDown:
		return from[1] < eps
	case faceSouth:
		return to[2] > 1-eps
	default:
		return from[2] < eps
	}
}

// boxFaceCorners devolve os 4 cantos (BL,BR,TR,TL) da face de uma caixa
// [from,to], seguindo a mesma parametrização do cubo unitário.
func boxFaceCorners(face int, from, to [3]float32) [4][3]float32 {
	unit := cubeFaceCorners(face, 0, 0, 0)
	var out [4][3]float32
	for i := 0; i < 4; i++ {
		for a := 0; a < 3; a++ {
			if unit[i][a] > 0.5 {
				out[i][a] = to[a]
			} else {
				out[i][a] = from[a]
			}
		}
	}
	return out
}

// faceUVRect converte o retângulo uv 0..16 do modelo para as coordenadas
// dos 4 cantos (BL,BR,TR,TL), normalizadas 0..1.
func faceUVRect(uv [4]float32) [4][2]float32 {
	u1, v1 := uv[0]/16, uv[1]/16
	u2, v2 := uv[2]/16, uv[3]/16
	return [4][2]float32{{u1, v2}, {u2, v2}, {u2, v1}, {u1, v1}}
}
