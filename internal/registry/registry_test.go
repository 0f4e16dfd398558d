package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBlockUnknownIDFallsBack(t *testing.T) {
	r := New(nil, nil)
	d := r.Block(200)
	if d == nil {
		t.Fatal("Block nunca deve retornar nil")
	}
	if d.Name != "air" || d.Solid || d.Opaque || d.Luminous() {
		t.Errorf("id desconhecido deveria se comportar como ar: %+v", d)
	}
}

func TestBlockDefFromJSON(t *testing.T) {
	id := 7
	tests := []struct {
		name string
		in   blockJSON
		want Facing
	}{
		{"sem facing", blockJSON{ID: &id}, Facing{Mode: FacingFixed}},
		{"yaw padrão", blockJSON{ID: &id, Facing: "yaw"}, Facing{Mode: FacingYaw, YawStep: 90}},
		{"yaw com passo", blockJSON{ID: &id, Facing: "yaw", YawStep: 45}, Facing{Mode: FacingYaw, YawStep: 45}},
		{"rotate", blockJSON{ID: &id, Facing: "Rotate"}, Facing{Mode: FacingRotate}},
		{"valor inválido", blockJSON{ID: &id, Facing: "banana"}, Facing{Mode: FacingFixed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blockDefFromJSON(tt.in).Facing; got != tt.want {
				t.Errorf("Facing = %+v, esperado %+v", got, tt.want)
			}
		})
	}

	// Luminância acima da faixa de nibble é cortada em 15
	d := blockDefFromJSON(blockJSON{ID: &id, Luminance: []uint8{200, 15, 3}})
	if d.Luminance != [3]uint8{15, 15, 3} {
		t.Errorf("Luminance = %v, esperado clamp em 15", d.Luminance)
	}
}

func TestResolveModelInheritance(t *testing.T) {
	models := map[string]*Model{
		"base": {
			Name:     "base",
			Textures: map[string]string{"all": "stone", "side": "stone_side"},
			Elements: []ModelElement{{To: [3]float32{16, 16, 16}}},
		},
		"filho": {
			Name:     "filho",
			Parent:   "base",
			Textures: map[string]string{"all": "glass"},
		},
		"neto": {
			Name:   "neto",
			Parent: "filho",
			Elements: []ModelElement{
				{To: [3]float32{16, 8, 16}},
			},
		},
	}

	r := New(nil, models)

	filho := r.Model("filho")
	if filho == nil {
		t.Fatal("modelo filho não resolvido")
	}
	if filho.Textures["all"] != "glass" {
		t.Errorf(`textura do filho sobrescreve o pai: got %q`, filho.Textures["all"])
	}
	if filho.Textures["side"] != "stone_side" {
		t.Errorf("textura só do pai deve ser herdada: got %q", filho.Textures["side"])
	}
	if len(filho.Elements) != 1 || filho.Elements[0].To != [3]float32{16, 16, 16} {
		t.Error("filho sem elementos próprios herda os do pai")
	}

	neto := r.Model("neto")
	if neto == nil {
		t.Fatal("modelo neto não resolvido")
	}
	if neto.Elements[0].To != [3]float32{16, 8, 16} {
		t.Error("elementos próprios do neto sobrescrevem a cadeia inteira")
	}
	if neto.Textures["all"] != "glass" {
		t.Error("neto herda texturas já mescladas do filho")
	}
}

func TestResolveModelCycleDiscarded(t *testing.T) {
	models := map[string]*Model{
		"a": {Name: "a", Parent: "b"},
		"b": {Name: "b", Parent: "a"},
		"ok": {Name: "ok", Elements: []ModelElement{{To: [3]float32{16, 16, 16}}}},
	}
	r := New(nil, models)
	if r.Model("a") != nil || r.Model("b") != nil {
		t.Error("ciclo de parent deveria descartar os modelos envolvidos")
	}
	if r.Model("ok") == nil {
		t.Error("modelo sadio não deveria ser afetado pelo ciclo")
	}
}

func TestResolveTexture(t *testing.T) {
	m := &Model{Textures: map[string]string{
		"particle": "#all",
		"all":      "#base",
		"base":     "blocks/stone",
	}}

	if got := m.ResolveTexture("#particle"); got != "blocks/stone" {
		t.Errorf("cadeia de #refs: got %q", got)
	}
	if got := m.ResolveTexture("blocks/dirt"); got != "blocks/dirt" {
		t.Errorf("valor literal passa direto: got %q", got)
	}
	if got := m.ResolveTexture("#faltando"); got != "#faltando" {
		t.Errorf("referência sem alvo volta intacta: got %q", got)
	}
}

func TestFullCube(t *testing.T) {
	full := &Model{Elements: []ModelElement{{To: [3]float32{16, 16, 16}}}}
	if !full.FullCube() {
		t.Error("cubo 0..16 deveria ser FullCube")
	}

	slab := &Model{Elements: []ModelElement{{To: [3]float32{16, 8, 16}}}}
	if slab.FullCube() {
		t.Error("meia-altura não é FullCube")
	}

	two := &Model{Elements: []ModelElement{
		{To: [3]float32{16, 16, 16}},
		{To: [3]float32{16, 16, 16}},
	}}
	if two.FullCube() {
		t.Error("mais de um elemento não é FullCube")
	}

	rotated := &Model{Elements: []ModelElement{{
		To:       [3]float32{16, 16, 16},
		Rotation: &ElementRotation{Axis: "y", Angle: 45},
	}}}
	if rotated.FullCube() {
		t.Error("elemento rotacionado não é FullCube")
	}
}

func TestLoadSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("lamp.block.json", `{"id": 40, "name": "lamp", "solid": true, "opaque": true, "luminance": [15, 15, 15]}`)
	write("quebrado.block.json", `{"id": 41, "name":`)
	write("sem_id.block.json", `{"name": "fantasma"}`)
	write("id_fora.block.json", `{"id": 900, "name": "gigante"}`)
	write("cube.model.json", `{"textures": {"all": "stone"}, "elements": [{"from": [0,0,0], "to": [16,16,16]}]}`)
	write("notas.txt", `não é json`)

	r := Load(dir)

	lamp := r.Block(40)
	if lamp.Name != "lamp" || !lamp.Luminous() {
		t.Errorf("bloco válido não carregou: %+v", lamp)
	}
	if r.Block(41).Name != "air" {
		t.Error("bloco malformado deveria ter sido pulado")
	}
	if m := r.Model("cube"); m == nil || !m.FullCube() {
		t.Error("modelo não carregou do sufixo .model.json")
	}
}

func TestLoadMissingDirFallsBackToDefaults(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "inexistente"))
	if r.Block(Stone).Name == "air" {
		t.Error("diretório ausente deveria cair nas definições embutidas")
	}
}

func TestSameConnectGroup(t *testing.T) {
	defs := []BlockDef{
		{ID: 1, Name: "water", ConnectGroups: []string{"liquid"}},
		{ID: 2, Name: "ice", ConnectGroups: []string{"liquid", "glassy"}},
		{ID: 3, Name: "stone"},
	}
	r := New(defs, nil)

	if !r.SameConnectGroup(1, 2) {
		t.Error("grupos com interseção deveriam conectar")
	}
	if r.SameConnectGroup(1, 3) || r.SameConnectGroup(3, 3) {
		t.Error("blocos sem grupo nunca conectam")
	}
}
