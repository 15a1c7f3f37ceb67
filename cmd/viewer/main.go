package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"dreamscape/domain/graph"
	"dreamscape/infrastructure/config"
	"dreamscape/viewer/client"
	"dreamscape/viewer/interact"
	"dreamscape/viewer/layout"
	"dreamscape/viewer/scene"
)

const (
	screenWidth  = 1280
	screenHeight = 800

	labelFontSize   = 20
	labelWorldScale = 0.12
)

// fontMesher measures labels with the loaded font, scaled into world
// units.
type fontMesher struct {
	font rl.Font
}

func (m fontMesher) Measure(text string) rl.Vector2 {
	size := rl.MeasureTextEx(m.font, text, labelFontSize, 1)
	return rl.NewVector2(size.X*labelWorldScale, size.Y*labelWorldScale)
}

// viewer owns all page-session state: the current scene, the active
// simulation, the highlight state, and the loaded font. Everything is
// touched only from the render goroutine; network results arrive over
// the snapshots channel.
type viewer struct {
	logger      *zap.Logger
	api         *client.Client
	scene       *scene.Scene
	sim         *layout.Simulation
	highlighter *interact.Highlighter
	camera      rl.Camera3D

	// snapshots delivers network results to the render loop. A late
	// submit response can overwrite a newer load (last writer wins);
	// the backend holds the durable state either way.
	snapshots chan *graph.Snapshot

	// pending holds a snapshot that arrived before the font was ready.
	pending *graph.Snapshot

	input strings.Builder
}

func newViewer(logger *zap.Logger, api *client.Client) *viewer {
	return &viewer{
		logger:      logger,
		api:         api,
		scene:       scene.New(nil),
		highlighter: interact.NewHighlighter(),
		camera: rl.Camera3D{
			Position:   rl.NewVector3(0, 40, 160),
			Target:     rl.NewVector3(0, 0, 0),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       60,
			Projection: rl.CameraPerspective,
		},
		snapshots: make(chan *graph.Snapshot, 4),
	}
}

// loadInitial fetches the current graph in the background. On failure
// the scene simply stays empty.
func (v *viewer) loadInitial() {
	go func() {
		snapshot, err := v.api.LoadGraph(context.Background())
		if err != nil {
			v.logger.Error("initial graph load failed", zap.Error(err))
			return
		}
		v.snapshots <- snapshot
	}()
}

// submit posts the typed entry in the background. On failure the
// current visual state stays as it is.
func (v *viewer) submit(text string) {
	go func() {
		snapshot, err := v.api.Submit(context.Background(), text)
		if err != nil {
			v.logger.Error("dream submission failed", zap.Error(err))
			return
		}
		v.snapshots <- snapshot
	}()
}

// applySnapshot replaces the rendered graph. The prior simulation is
// stopped before the new one starts so only one ever drives the scene.
// A snapshot arriving before the font is loaded is parked and applied
// on a later frame.
func (v *viewer) applySnapshot(snapshot *graph.Snapshot) {
	if v.sim != nil {
		v.sim.Stop()
		v.sim = nil
	}

	if err := v.scene.Rebuild(snapshot); err != nil {
		v.logger.Warn("render skipped", zap.Error(err))
		v.pending = snapshot
		return
	}

	v.pending = nil
	v.highlighter.Reset(v.scene)
	v.sim = layout.New(v.scene, layout.DefaultConfig())

	v.logger.Info("graph rendered",
		zap.Int("nodes", len(v.scene.Meshes)),
		zap.Int("links", len(v.scene.Lines)),
	)
}

// frame advances one display frame: drain network results, retry a
// parked snapshot, step the simulation, pick, and draw.
func (v *viewer) frame() {
	select {
	case snapshot := <-v.snapshots:
		v.applySnapshot(snapshot)
	default:
	}

	if v.pending != nil && v.scene.FontReady() {
		v.applySnapshot(v.pending)
	}

	if v.sim != nil {
		v.sim.Step()
	}

	v.readInput()

	rl.UpdateCamera(&v.camera, rl.CameraOrbital)

	mouse := rl.GetMousePosition()
	ray := rl.GetScreenToWorldRay(mouse, v.camera)
	hit := interact.Pick(ray, v.scene)
	v.highlighter.Update(v.scene, hit)

	tooltip := v.highlighter.Tooltip()
	if current := v.highlighter.Current(); current != nil {
		tooltip.Position = rl.GetWorldToScreen(current.Position, v.camera)
	}

	v.draw()
}

// readInput collects typed characters; Enter submits the buffer. This
// is the UI element's entry point into submission.
func (v *viewer) readInput() {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		v.input.WriteRune(ch)
	}

	if rl.IsKeyPressed(rl.KeyBackspace) {
		text := v.input.String()
		if len(text) > 0 {
			runes := []rune(text)
			v.input.Reset()
			v.input.WriteString(string(runes[:len(runes)-1]))
		}
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		text := strings.TrimSpace(v.input.String())
		v.input.Reset()
		if text != "" {
			v.submit(text)
		}
	}
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(12, 12, 24, 255))

	rl.BeginMode3D(v.camera)
	for _, line := range v.scene.Lines {
		rl.DrawLine3D(line.From, line.To, line.Color)
	}
	for _, mesh := range v.scene.Meshes {
		box := mesh.Bounds()
		rl.DrawCubeWiresV(mesh.Position, rl.NewVector3(
			box.Max.X-box.Min.X,
			box.Max.Y-box.Min.Y,
			box.Max.Z-box.Min.Z,
		), mesh.Color)
	}
	rl.EndMode3D()

	// Labels and tooltip are drawn as a 2D overlay at each node's
	// projected screen position.
	for _, mesh := range v.scene.Meshes {
		pos := rl.GetWorldToScreen(mesh.Position, v.camera)
		rl.DrawText(mesh.ID, int32(pos.X), int32(pos.Y), labelFontSize, mesh.Color)
	}

	tooltip := v.highlighter.Tooltip()
	if tooltip.Visible {
		rl.DrawRectangle(int32(tooltip.Position.X)+12, int32(tooltip.Position.Y)-28, int32(10*len(tooltip.Text)+16), 26, rl.NewColor(30, 30, 50, 230))
		rl.DrawText(tooltip.Text, int32(tooltip.Position.X)+20, int32(tooltip.Position.Y)-24, labelFontSize, rl.RayWhite)
	}

	prompt := fmt.Sprintf("dream> %s_", v.input.String())
	rl.DrawText(prompt, 16, screenHeight-36, labelFontSize, rl.LightGray)

	rl.EndDrawing()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	v := newViewer(logger, client.New(cfg.APIBaseURL, nil))

	// The initial load races the window and font setup on purpose: a
	// snapshot that lands first is parked until the font is ready.
	v.loadInitial()

	rl.InitWindow(screenWidth, screenHeight, "dreamscape")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	v.scene.SetLabelMesher(fontMesher{font: rl.GetFontDefault()})

	for !rl.WindowShouldClose() {
		v.frame()
	}
}
