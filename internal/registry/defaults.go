package registry

// Ids dos blocos embutidos. O conjunto embutido permite rodar o binário
// sem diretório de assets; um diretório presente o substitui por completo.
const (
	Air uint8 = iota
	Stone
	Dirt
	Grass
	Water
	Glass
	Lamp
	EmberLamp
	Slab
	Torch
	Leaves
)

// NewDefault retorna o registro com as definições embutidas.
func NewDefault() *Registry {
	defs := []BlockDef{
		{ID: Air, Name: "air"},
		{ID: Stone, Name: "stone", Solid: true, Opaque: true},
		{ID: Dirt, Name: "dirt", Solid: true, Opaque: true},
		{ID: Grass, Name: "grass", Solid: true, Opaque: true},
		{ID: Water, Name: "water", Translucent: true, ConnectGroups: []string{"liquid"}},
		{ID: Glass, Name: "glass", Solid: true},
		{ID: Lamp, Name: "lamp", Solid: true, Opaque: true, Luminance: [3]uint8{15, 15, 15}},
		{ID: EmberLamp, Name: "ember_lamp", Solid: true, Opaque: true, Luminance: [3]uint8{15, 13, 10}},
		{ID: Slab, Name: "slab", Solid: true, Model: "slab", Facing: Facing{Mode: FacingRotate}},
		{ID: Torch, Name: "torch", Model: "torch", Luminance: [3]uint8{14, 12, 8}, Facing: Facing{Mode: FacingYaw, YawStep: 90}},
		{ID: Leaves, Name: "leaves", Solid: true, ConnectGroups: []string{"foliage"}},
	}
	return New(defs, defaultModels())
}

func defaultModels() map[string]*Model {
	fullFaces := func(tex string) map[string]ModelFace {
		faces := make(map[string]ModelFace, 6)
		for name := range FaceDirNames {
			faces[name] = ModelFace{Texture: tex, UV: [4]float32{0, 0, 16, 16}, CullFace: name}
		}
		return faces
	}

	slabFaces := map[string]ModelFace{
		"up":    {Texture: "#top", UV: [4]float32{0, 0, 16, 16}},
		"down":  {Texture: "#side", UV: [4]float32{0, 0, 16, 16}, CullFace: "down"},
		"north": {Texture: "#side", UV: [4]float32{0, 8, 16, 16}, CullFace: "north"},
		"south": {Texture: "#side", UV: [4]float32{0, 8, 16, 16}, CullFace: "south"},
		"east":  {Texture: "#side", UV: [4]float32{0, 8, 16, 16}, CullFace: "east"},
		"west":  {Texture: "#side", UV: [4]float32{0, 8, 16, 16}, CullFace: "west"},
	}

	torchFaces := map[string]ModelFace{
		"up":    {Texture: "#torch", UV: [4]float32{7, 6, 9, 8}},
		"north": {Texture: "#torch", UV: [4]float32{7, 6, 9, 16}},
		"south": {Texture: "#torch", UV: [4]float32{7, 6, 9, 16}},
		"east":  {Texture: "#torch", UV: [4]float32{7, 6, 9, 16}},
		"west":  {Texture: "#torch", UV: [4]float32{7, 6, 9, 16}},
	}

	return map[string]*Model{
		"cube": {
			Name:     "cube",
			Textures: map[string]string{"all": "stone"},
			Elements: []ModelElement{{
				From:  [3]float32{0, 0, 0},
				To:    [3]float32{16, 16, 16},
				Faces: fullFaces("#all"),
			}},
		},
		"slab": {
			Name:     "slab",
			Textures: map[string]string{"top": "stone", "side": "stone"},
			Elements: []ModelElement{{
				From:  [3]float32{0, 0, 0},
				To:    [3]float32{16, 8, 16},
				Faces: slabFaces,
			}},
		},
		"torch": {
			Name:     "torch",
			Textures: map[string]string{"torch": "torch"},
			Elements: []ModelElement{{
				From:  [3]float32{7, 0, 7},
				To:    [3]float32{9, 10, 9},
				Faces: torchFaces,
			}},
		},
	}
}
