package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do Xyloia.
type Config struct {
	// Janela
	WindowWidth  int32   `json:"window_width"`
	WindowHeight int32   `json:"window_height"`
	WindowTitle  string  `json:"window_title"`
	Fullscreen   bool    `json:"fullscreen"`
	TargetFPS    int32   `json:"target_fps"`
	FOV          float32 `json:"fov"`

	// Mundo
	Seed          int64   `json:"seed"`
	AssetsDir     string  `json:"assets_dir"`
	ViewDistance  int32   `json:"view_distance"`    // Raio em chunks que deve permanecer carregado
	EvictMargin   int32   `json:"evict_margin"`     // Histerese: só descarrega além de ViewDistance+EvictMargin
	WorkerThreads int     `json:"worker_threads"`   // 0 = NumCPU-2
	UploadBudget  float64 `json:"upload_budget_ms"` // Orçamento por frame para upload de malha (ms)

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "Xyloia",
		Fullscreen:   false,
		TargetFPS:    60,
		FOV:          70.0,

		Seed:          1337,
		AssetsDir:     "assets/blocks",
		ViewDistance:  8,
		EvictMargin:   2,
		WorkerThreads: 0,
		UploadBudget:  4.0,

		CameraSpeed:       24.0,
		CameraSensitivity: 0.3,

		ShowDebugInfo: true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
