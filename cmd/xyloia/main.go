package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/fkerimk/Xyloia/internal/app"
	"github.com/fkerimk/Xyloia/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	seed := flag.Int64("seed", 0, "Seed do mundo (0 = usar o config)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	viewDist := flag.Int("view", 0, "Raio de visão em chunks")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("[Xyloia] Iniciando v0.1.0")

	cfg := config.Load()

	// Flags de linha de comando sobrescrevem o config salvo
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}
	if *viewDist > 0 {
		cfg.ViewDistance = int32(*viewDist)
	}

	application := app.New(cfg)
	application.Run()
}
