package app

import (
	"log"

	"github.com/fkerimk/Xyloia/internal/voxel"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processa edição de blocos e atalhos de debug.
func (a *App) handleInput() {
	// Quebrar bloco
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && a.aimOk {
		a.World.SetBlock(a.aimHit.X, a.aimHit.Y, a.aimHit.Z, voxel.Block{})
	}

	// Colocar bloco na face mirada
	if rl.IsMouseButtonPressed(rl.MouseRightButton) && a.aimOk {
		x := a.aimHit.X + a.aimHit.Normal.X
		y := a.aimHit.Y + a.aimHit.Normal.Y
		z := a.aimHit.Z + a.aimHit.Normal.Z
		if a.World.GetBlock(x, y, z).IsAir() {
			a.World.SetBlock(x, y, z, voxel.Block{ID: a.placeable[a.placeIdx]})
		}
	}

	// Seleção do bloco a colocar (scroll)
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		n := len(a.placeable)
		a.placeIdx = ((a.placeIdx-int(wheel))%n + n) % n
	}

	// Teclas 1-9 selecionam direto
	for i := 0; i < len(a.placeable) && i < 9; i++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
			a.placeIdx = i
		}
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		a.Config.WireframeMode = !a.Config.WireframeMode
		log.Printf("[App] Wireframe: %v", a.Config.WireframeMode)
	}
}
