package app

import (
	"log"
	"time"

	"github.com/fkerimk/Xyloia/internal/camera"
	"github.com/fkerimk/Xyloia/internal/gen"
	"github.com/fkerimk/Xyloia/internal/registry"
	"github.com/fkerimk/Xyloia/internal/render"
	"github.com/fkerimk/Xyloia/internal/voxel"
	"github.com/fkerimk/Xyloia/internal/world"
	"github.com/fkerimk/Xyloia/shared/config"
	"github.com/fkerimk/Xyloia/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// App é a aplicação principal do Xyloia.
type App struct {
	Config *config.Config

	Cam      *camera.Controller
	World    *world.World
	Renderer *render.Renderer
	Registry *registry.Registry

	// Bloco mirado pela câmera neste frame
	aimHit world.RaycastHit
	aimOk  bool

	// Bloco selecionado para colocar
	placeable []uint8
	placeIdx  int

	frameCount  int
	lastUploads int
	uploadAvg   float32
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config: cfg,
		placeable: []uint8{
			registry.Stone, registry.Dirt, registry.Grass, registry.Glass,
			registry.Lamp, registry.EmberLamp, registry.Slab, registry.Torch,
			registry.Leaves,
		},
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	log.Println("[Xyloia] Janela inicializada")
	log.Printf("[Xyloia] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	a.Registry = registry.Load(a.Config.AssetsDir)
	a.Renderer = render.NewRenderer()

	a.World = world.New(a.Registry, gen.NewSimplex(a.Config.Seed), world.Options{
		ViewDistance: a.Config.ViewDistance,
		EvictMargin:  a.Config.EvictMargin,
		Workers:      a.Config.WorkerThreads,
	})
	a.World.OnEvict = a.Renderer.Unload

	a.Cam = camera.New(rl.Vector3{X: 8, Y: 96, Z: 8}, 45, -20)
	a.Cam.RLCamera.Fovy = a.Config.FOV
	a.Cam.MoveSpeed = a.Config.CameraSpeed
	if a.Config.CameraSensitivity > 0 {
		a.Cam.Sensitivity = a.Config.CameraSensitivity * 0.0075
	}

	rl.DisableCursor()

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	dt := rl.GetFrameTime()

	a.Cam.HandleInput(dt)
	a.handleInput()

	center := a.Cam.ChunkPos(voxel.Width, voxel.Depth)
	a.World.Update(center)

	budget := time.Duration(a.Config.UploadBudget * float64(time.Millisecond))
	a.lastUploads = a.World.DrainReady(budget, a.Renderer.Upload)
	a.uploadAvg = util.Lerp(a.uploadAvg, float32(a.lastUploads), 0.1)

	a.aimHit, a.aimOk = a.World.Raycast(a.Cam.Ray(), 8.0)
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")
	a.World.Stop()
	a.Renderer.UnloadAll()
	if err := a.Config.Save(); err != nil {
		log.Printf("[App] Erro ao salvar configurações: %v", err)
	}
}
