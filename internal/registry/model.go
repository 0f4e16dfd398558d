package registry

import (
	"fmt"
)

// FaceDir indexa as 6 direções de face de um elemento na ordem canônica do mesher.
type FaceDir int

const (
	FaceEast FaceDir = iota
	FaceWest
	FaceUp
	FaceDown
	FaceSouth
	FaceNorth
	FaceCount
)

// FaceNames dá o nome JSON de cada direção, na ordem canônica.
var FaceNames = [FaceCount]string{"east", "west", "up", "down", "south", "north"}

// FaceDirNames mapeia o nome JSON de cada direção para seu índice.
var FaceDirNames = map[string]FaceDir{
	"east":  FaceEast,
	"west":  FaceWest,
	"up":    FaceUp,
	"down":  FaceDown,
	"south": FaceSouth,
	"north": FaceNorth,
}

// ModelFace é uma face declarada de um elemento de modelo.
type ModelFace struct {
	Texture  string     `json:"texture"`  // Referência "#nome" resolvida via mapa de texturas
	UV       [4]float32 `json:"uv"`       // u1,v1,u2,v2 em unidades 0..16
	CullFace string     `json:"cullface"` // Direção que, se ocluída, suprime esta face ("" = nunca)
	Rotation int        `json:"rotation"` // Rotação da textura: 0, 90, 180 ou 270
}

// ElementRotation é a rotação declarada de um elemento (pivô + eixo + ângulo).
type ElementRotation struct {
	Origin [3]float32 `json:"origin"`
	Axis   string     `json:"axis"` // "x", "y" ou "z"
	Angle  float32    `json:"angle"`
}

// ModelElement é um paralelepípedo do modelo, em unidades 0..16.
type ModelElement struct {
	From     [3]float32           `json:"from"`
	To       [3]float32           `json:"to"`
	Rotation *ElementRotation     `json:"rotation"`
	Faces    map[string]ModelFace `json:"faces"`
}

// Model é uma definição de geometria, possivelmente herdando de um parent.
// Após resolveModel, Parent é vazio e texturas/elementos já estão mesclados.
type Model struct {
	Name     string            `json:"-"`
	Parent   string            `json:"parent"`
	Textures map[string]string `json:"textures"`
	Elements []ModelElement    `json:"elements"`
}

// FullCube informa se o modelo ocupa o volume inteiro 0..16 com um único elemento.
func (m *Model) FullCube() bool {
	if len(m.Elements) != 1 || m.Elements[0].Rotation != nil {
		return false
	}
	e := m.Elements[0]
	return e.From == [3]float32{0, 0, 0} && e.To == [3]float32{16, 16, 16}
}

// ResolveTexture segue referências "#nome" através do mapa de texturas.
// Devolve a string original se não houver resolução (textura faltando não é fatal).
func (m *Model) ResolveTexture(ref string) string {
	for i := 0; i < 8; i++ {
		if len(ref) == 0 || ref[0] != '#' {
			return ref
		}
		next, ok := m.Textures[ref[1:]]
		if !ok {
			return ref
		}
		ref = next
	}
	return ref
}

const maxParentDepth = 8

// resolveModel aplica a cadeia de herança: texturas e elementos do filho
// sobrescrevem os do pai (merge child-over-parent).
func resolveModel(name string, models map[string]*Model, depth int) (*Model, error) {
	if depth > maxParentDepth {
		return nil, fmt.Errorf("cadeia de parent muito profunda em %q", name)
	}
	m, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("modelo %q não encontrado", name)
	}
	if m.Parent == "" {
		return m, nil
	}

	parent, err := resolveModel(m.Parent, models, depth+1)
	if err != nil {
		return nil, err
	}

	merged := &Model{Name: name, Textures: make(map[string]string)}
	for k, v := range parent.Textures {
		merged.Textures[k] = v
	}
	for k, v := range m.Textures {
		merged.Textures[k] = v
	}
	if len(m.Elements) > 0 {
		merged.Elements = m.Elements
	} else {
		merged.Elements = parent.Elements
	}
	return merged, nil
}
