package graphics

import (
	"car-viewer/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var background = rl.NewColor(28, 30, 34, 255)

// Run starts the window and main loop. Each frame it calls update with the frame time,
// then clears the screen and calls draw. init runs once after the window and GL context
// exist, so GPU resources can be created there; a non-nil error closes the window.
// ESC toggles the terminal, so the window closes only via its close button.
func Run(cfg config.WindowConfig, init func() error, update func(dt float32), draw func()) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if cfg.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
	}
	w, h := int32(cfg.Width), int32(cfg.Height)
	if w == 0 || h == 0 {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, cfg.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	if init != nil {
		if err := init(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
	return nil
}
