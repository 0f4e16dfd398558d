package app

import (
	"fmt"

	"github.com/fkerimk/Xyloia/internal/voxel"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(110, 165, 230, 255)) // Céu

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	if a.Config.WireframeMode {
		rl.EnableWireMode()
	}

	a.Renderer.Draw(a.Cam.RLCamera, voxel.DefaultDims())

	if a.Config.WireframeMode {
		rl.DisableWireMode()
	}

	if a.aimOk {
		a.Renderer.DrawSelection(a.aimHit.X, a.aimHit.Y, a.aimHit.Z)
	}

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	// Mira
	cx := int32(rl.GetScreenWidth()) / 2
	cy := int32(rl.GetScreenHeight()) / 2
	rl.DrawLine(cx-8, cy, cx+8, cy, rl.White)
	rl.DrawLine(cx, cy-8, cx, cy+8, rl.White)

	// Bloco selecionado para colocar
	place := a.Registry.Block(a.placeable[a.placeIdx])
	rl.DrawText(fmt.Sprintf("Bloco: %s", place.Name), 10, int32(rl.GetScreenHeight())-30, 20, rl.White)

	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(340)
	height := int32(190)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	pos := a.Cam.Position
	rl.DrawText(fmt.Sprintf("Pos: %.1f %.1f %.1f", pos.X(), pos.Y(), pos.Z()), x+10, y+35, 20, rl.White)

	center := a.Cam.ChunkPos(voxel.Width, voxel.Depth)
	rl.DrawText(fmt.Sprintf("Chunk: %d, %d", center.X, center.Z), x+10, y+60, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Carregados: %d", a.World.ChunkCount()), x+10, y+85, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Uploads/frame: %d (média %.1f)", a.lastUploads, a.uploadAvg), x+10, y+110, 20, rl.White)

	if a.aimOk {
		def := a.Registry.Block(a.World.GetBlock(a.aimHit.X, a.aimHit.Y, a.aimHit.Z).ID)
		l := a.World.GetLight(a.aimHit.X, a.aimHit.Y, a.aimHit.Z)
		rl.DrawText(fmt.Sprintf("Mira: %s (%d,%d,%d)", def.Name, a.aimHit.X, a.aimHit.Y, a.aimHit.Z),
			x+10, y+135, 20, rl.White)
		rl.DrawText(fmt.Sprintf("Luz: R%d G%d B%d S%d", l.R(), l.G(), l.B(), l.Sky()),
			x+10, y+160, 20, rl.White)
	}
}
