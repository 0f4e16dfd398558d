package registry

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FacingMode define como o campo data de um bloco é interpretado como rotação.
type FacingMode int

const (
	// FacingFixed ignora data: o bloco nunca rotaciona.
	FacingFixed FacingMode = iota
	// FacingYaw gira o modelo em torno do eixo Y em passos de YawStep graus.
	FacingYaw
	// FacingRotate troca eixos: data escolhe para qual eixo o "topo" aponta.
	FacingRotate
)

// Facing é a variante de rotação de um bloco com seus parâmetros associados.
type Facing struct {
	Mode    FacingMode
	YawStep int32 // Graus por passo de data (apenas FacingYaw; padrão 90)
}

// BlockDef descreve as propriedades estáticas de um tipo de bloco.
// Solidez e opacidade são sempre derivadas daqui, nunca armazenadas no chunk.
type BlockDef struct {
	ID            uint8
	Name          string
	Solid         bool
	Opaque        bool
	Translucent   bool // Translúcido e não-cheio: faces entre blocos do mesmo id são desenhadas
	Luminance     [3]uint8
	Facing        Facing
	ConnectGroups []string
	Model         string // Nome do modelo; vazio = cubo trivial (caminho rápido)
}

// Luminous indica se o bloco emite luz em algum canal.
func (d *BlockDef) Luminous() bool {
	return d.Luminance[0] > 0 || d.Luminance[1] > 0 || d.Luminance[2] > 0
}

// airDef é o fallback para ids desconhecidos: comporta-se como ar.
var airDef = BlockDef{ID: 0, Name: "air"}

// Registry é o catálogo imutável de blocos e modelos.
// Construído uma vez na inicialização e passado explicitamente; nunca muda depois,
// então leituras concorrentes não precisam de sincronização.
type Registry struct {
	blocks [256]*BlockDef
	models map[string]*Model
}

// blockJSON é o esquema de um arquivo de definição de bloco.
type blockJSON struct {
	ID            *int     `json:"id"`
	Name          string   `json:"name"`
	Solid         bool     `json:"solid"`
	Opaque        bool     `json:"opaque"`
	Translucent   bool     `json:"translucent"`
	Luminance     []uint8  `json:"luminance"`
	Facing        string   `json:"facing"`
	YawStep       int32    `json:"yaw_step"`
	ConnectGroups []string `json:"connect_group"`
	Model         string   `json:"model"`
}

// New monta um registro a partir de definições já decodificadas.
func New(defs []BlockDef, models map[string]*Model) *Registry {
	r := &Registry{models: make(map[string]*Model)}
	for i := range defs {
		d := defs[i]
		r.blocks[d.ID] = &d
	}
	for name := range models {
		if resolved, err := resolveModel(name, models, 0); err == nil {
			r.models[name] = resolved
		} else {
			log.Printf("[Registry] Modelo %q descartado: %v", name, err)
		}
	}
	return r
}

// Load varre um diretório de JSONs e monta o registro.
// Arquivos malformados são pulados com um log; nunca retorna erro fatal.
// Arquivos *.block.json viram BlockDefs, *.model.json viram modelos.
func Load(dir string) *Registry {
	var defs []BlockDef
	models := make(map[string]*Model)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[Registry] Diretório de assets %q indisponível (%v); usando definições embutidas", dir, err)
		return NewDefault()
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[Registry] Falha ao ler %s: %v", path, err)
			continue
		}

		if strings.HasSuffix(e.Name(), ".model.json") {
			var m Model
			if err := json.Unmarshal(data, &m); err != nil {
				log.Printf("[Registry] Modelo malformado %s: %v", path, err)
				continue
			}
			m.Name = strings.TrimSuffix(e.Name(), ".model.json")
			models[m.Name] = &m
			continue
		}

		var bj blockJSON
		if err := json.Unmarshal(data, &bj); err != nil || bj.ID == nil || *bj.ID < 0 || *bj.ID > 255 {
			log.Printf("[Registry] Bloco malformado %s (pulado)", path)
			continue
		}
		defs = append(defs, blockDefFromJSON(bj))
	}

	log.Printf("[Registry] Carregados %d blocos e %d modelos de %s", len(defs), len(models), dir)
	return New(defs, models)
}

func blockDefFromJSON(bj blockJSON) BlockDef {
	d := BlockDef{
		ID:            uint8(*bj.ID),
		Name:          bj.Name,
		Solid:         bj.Solid,
		Opaque:        bj.Opaque,
		Translucent:   bj.Translucent,
		ConnectGroups: bj.ConnectGroups,
		Model:         bj.Model,
	}
	for i := 0; i < 3 && i < len(bj.Luminance); i++ {
		v := bj.Luminance[i]
		if v > 15 {
			v = 15
		}
		d.Luminance[i] = v
	}
	switch strings.ToLower(bj.Facing) {
	case "yaw":
		step := bj.YawStep
		if step == 0 {
			step = 90
		}
		d.Facing = Facing{Mode: FacingYaw, YawStep: step}
	case "rotate":
		d.Facing = Facing{Mode: FacingRotate}
	default:
		d.Facing = Facing{Mode: FacingFixed}
	}
	return d
}

// Block retorna a definição de um id. Nunca retorna nil: ids desconhecidos
// caem no default "tipo ar" e ficam invisíveis em vez de derrubar o jogo.
func (r *Registry) Block(id uint8) *BlockDef {
	if d := r.blocks[id]; d != nil {
		return d
	}
	return &airDef
}

// Model retorna um modelo resolvido (herança já aplicada) ou nil.
func (r *Registry) Model(name string) *Model {
	return r.models[name]
}

// IsOpaque responde se o id bloqueia luz e faces vizinhas.
func (r *Registry) IsOpaque(id uint8) bool {
	return r.Block(id).Opaque
}

// IsSolid responde se o id é sólido para colisão/AO.
func (r *Registry) IsSolid(id uint8) bool {
	return r.Block(id).Solid
}

// Luminance retorna a emissão RGB (0..15 por canal) do id.
func (r *Registry) Luminance(id uint8) [3]uint8 {
	return r.Block(id).Luminance
}

// SameConnectGroup verifica se dois ids compartilham algum grupo de conexão
// (blocos do mesmo grupo se fundem visualmente e suprimem a face comum).
func (r *Registry) SameConnectGroup(a, b uint8) bool {
	ga := r.Block(a).ConnectGroups
	gb := r.Block(b).ConnectGroups
	for _, x := range ga {
		for _, y := range gb {
			if x == y {
				return true
			}
		}
	}
	return false
}
