// Package app owns the configurator state. Input surfaces (window controls, terminal,
// chat, voice, file watcher) post events; the frame loop drains them on its own
// goroutine, so state is never touched concurrently.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"car-viewer/internal/chat"
	"car-viewer/internal/config"
	"car-viewer/internal/drive"
	"car-viewer/internal/lighting"
	"car-viewer/internal/logger"
	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/paint"
	"car-viewer/internal/parts"
	"car-viewer/internal/voice"
)

const (
	eventBuffer = 64

	// doorSpeed is how much of the full swing the doors cover per second.
	doorSpeed = 1.5

	// DoorAngle is the swing of a fully open door, in radians.
	DoorAngle = 1.1

	// deliverWait bounds how long Deliver waits for room in the queue.
	deliverWait = 5 * time.Second

	stillLoading = "The car is still loading, try again in a moment."
)

// App is the configurator state.
type App struct {
	lib    *material.Library
	lights *lighting.Selector
	rules  parts.Rules
	log    *logger.Logger
	slog   *slog.Logger
	router *chat.Router

	root      *model.Node
	modelPath string
	groups    *parts.Groups
	sel       paint.Selection

	doorsOpen bool
	doorFrac  float32

	follow  bool
	vehicle *drive.Vehicle
	camera  *drive.FollowCamera

	listening atomic.Bool
	events    chan Event
}

// New builds the state from cfg. The model is not loaded yet: until a ModelLoaded event
// arrives every command reports that the car is still loading.
func New(cfg *config.Config, lib *material.Library, log *logger.Logger, sl *slog.Logger) (*App, error) {
	if sl == nil {
		sl = slog.Default()
	}
	if log == nil {
		log = logger.New("")
	}
	lights, err := lighting.NewSelector(cfg.Lighting.Presets)
	if err != nil {
		return nil, err
	}
	if cfg.Lighting.Initial != "" && cfg.Lighting.Initial != lighting.None && !lights.SetActive(cfg.Lighting.Initial) {
		return nil, fmt.Errorf("app: unknown lighting preset %q", cfg.Lighting.Initial)
	}

	a := &App{
		lib:     lib,
		lights:  lights,
		rules:   parts.DefaultRules(),
		log:     log,
		slog:    sl,
		follow:  cfg.Camera.Follow,
		vehicle: drive.NewVehicle([3]float32{}),
		events:  make(chan Event, eventBuffer),
	}
	a.camera = drive.NewFollowCamera(a.vehicle, cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.Smoothing)

	picks := []struct {
		tag  parts.Tag
		name string
	}{
		{parts.Body, cfg.Materials.Body},
		{parts.Rims, cfg.Materials.Rims},
		{parts.Glass, cfg.Materials.Glass},
	}
	for _, p := range picks {
		if p.name == "" {
			continue
		}
		m, ok := lib.Lookup(CategoryFor(p.tag), p.name)
		if !ok {
			return nil, fmt.Errorf("app: unknown %s material %q", p.tag, p.name)
		}
		a.setSelection(p.tag, m)
	}
	a.router = chat.NewRouter(lib, lights.Names(), a, log)
	return a, nil
}

// CategoryFor returns the library category a part picks from.
func CategoryFor(t parts.Tag) material.Category {
	if t == parts.Glass {
		return material.Glass
	}
	return material.Main
}

// SetRules replaces the classification rules used for the next model.
func (a *App) SetRules(r parts.Rules) {
	a.rules = r
}

// Post queues ev for the next Drain. It never blocks; a full queue drops the event and
// returns false.
func (a *App) Post(ev Event) bool {
	select {
	case a.events <- ev:
		return true
	default:
		a.slog.Warn("Event queue full, dropping event", slog.String("event", eventName(ev)))
		return false
	}
}

// Deliver queues ev, waiting for room until ctx ends or the wait times out. Background
// goroutines use it for one-shot results that must not be lost. A dropped event is
// reported in the conversation log and Deliver returns false.
func (a *App) Deliver(ctx context.Context, ev Event) bool {
	ctx, cancel := context.WithTimeout(ctx, deliverWait)
	defer cancel()
	select {
	case a.events <- ev:
		return true
	case <-ctx.Done():
		a.slog.Error("Event not delivered", slog.String("event", eventName(ev)), slog.String("error", ctx.Err().Error()))
		a.log.Log(logger.System, fmt.Sprintf("The viewer is busy and lost a %s update, try again.", eventName(ev)))
		return false
	}
}

func eventName(ev Event) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", ev), "app.")
}

// Drain applies every queued event and returns how many there were. Call it from the
// goroutine that owns the state, once per frame.
func (a *App) Drain() int {
	n := 0
	for {
		select {
		case ev := <-a.events:
			a.handle(ev)
			n++
		default:
			return n
		}
	}
}

func (a *App) handle(ev Event) {
	switch ev := ev.(type) {
	case ModelLoaded:
		a.loadModel(ev)
	case LibraryLoaded:
		a.loadLibrary(ev)
	case Command:
		a.router.Route(ev.Text)
	case VoiceResult:
		a.listening.Store(false)
		a.router.Route(ev.Text)
	case VoiceFailed:
		a.listening.Store(false)
		a.log.Log(logger.System, fmt.Sprintf("Voice input failed: %v", ev.Err))
	case Select:
		a.selectByName(ev.Part, ev.Name)
	case SetLighting:
		a.setLighting(ev.Preset)
	case ToggleFollow:
		a.setFollow(!a.follow)
	case SetFollow:
		a.setFollow(ev.On)
	case ToggleDoors:
		if !a.Ready() {
			a.log.Log(logger.System, stillLoading)
			return
		}
		if a.doorCount() > 0 {
			a.doorsOpen = !a.doorsOpen
		}
	default:
		a.slog.Warn("Unknown event", slog.String("event", fmt.Sprintf("%T", ev)))
	}
}

func (a *App) loadModel(ev ModelLoaded) {
	if ev.Err != nil {
		a.slog.Error("Model load failed", slog.String("path", ev.Path), slog.String("error", ev.Err.Error()))
		a.log.Log(logger.System, fmt.Sprintf("Could not load %s: %v", ev.Path, ev.Err))
		return
	}
	a.root = ev.Root
	a.modelPath = ev.Path
	a.groups = a.rules.Classify(ev.Root)
	a.doorsOpen = false
	a.doorFrac = 0
	a.slog.Info("Model classified",
		slog.String("path", ev.Path),
		slog.Int("nodes", ev.Root.Count()),
		slog.String("groups", a.groups.String()))
	if !a.groups.Ready() {
		a.log.Log(logger.System, "No paintable body was found in this model.")
		return
	}
	a.apply()
}

func (a *App) loadLibrary(ev LibraryLoaded) {
	if ev.Err != nil {
		a.slog.Error("Material library load failed", slog.String("error", ev.Err.Error()))
		a.log.Log(logger.System, fmt.Sprintf("Could not load materials: %v", ev.Err))
		return
	}
	a.lib = ev.Library
	for _, t := range []parts.Tag{parts.Body, parts.Rims, parts.Glass} {
		cur := a.sel.Get(t)
		if cur == nil {
			continue
		}
		m, ok := a.lib.Lookup(CategoryFor(t), cur.Name)
		if !ok {
			m = nil
			if all := a.lib.Category(CategoryFor(t)); len(all) > 0 {
				m = all[0]
			}
		}
		a.setSelection(t, m)
	}
	a.router = chat.NewRouter(a.lib, a.lights.Names(), a, a.log)
	a.apply()
	a.slog.Info("Material library reloaded",
		slog.Int("main", len(a.lib.Category(material.Main))),
		slog.Int("glass", len(a.lib.Category(material.Glass))))
}

func (a *App) selectByName(t parts.Tag, name string) {
	if !a.Ready() {
		a.log.Log(logger.System, stillLoading)
		return
	}
	c := CategoryFor(t)
	m, ok := a.lib.Lookup(c, name)
	if !ok {
		a.log.Log(logger.System, fmt.Sprintf("Unknown %s option %q. Available: %s.", t, name, strings.Join(a.lib.Names(c), ", ")))
		return
	}
	a.setSelection(t, m)
	a.apply()
}

func (a *App) setLighting(preset string) {
	if !a.Ready() {
		a.log.Log(logger.System, stillLoading)
		return
	}
	if preset == lighting.None {
		a.lights.SetActive(lighting.None)
		return
	}
	if !a.lights.SetActive(preset) {
		a.log.Log(logger.System, fmt.Sprintf("Unknown lighting preset %q. Available: %s.", preset, strings.Join(a.lights.Options(), ", ")))
	}
}

func (a *App) setFollow(on bool) {
	if on && !a.follow {
		pos, target := a.camera.Goal(a.vehicle)
		a.camera.Position, a.camera.Target = pos, target
	}
	a.follow = on
}

func (a *App) setSelection(t parts.Tag, m *material.Material) {
	switch t {
	case parts.Body:
		a.sel.Body = m
	case parts.Rims:
		a.sel.Rims = m
	case parts.Glass:
		a.sel.Glass = m
	}
}

// apply pushes the selection onto the model: node materials and surface colors.
func (a *App) apply() {
	if !a.Ready() {
		return
	}
	changed := paint.Apply(a.groups, a.sel)
	tinted := 0
	for _, t := range []parts.Tag{parts.Body, parts.Rims, parts.Glass} {
		if m := a.sel.Get(t); m != nil {
			tinted += paint.TintAll(a.groups.Get(t), m.Color)
		}
	}
	a.slog.Debug("Selection applied", slog.Int("nodes", changed), slog.Int("surfaces", tinted))
}

func (a *App) doorCount() int {
	if a.groups == nil {
		return 0
	}
	return len(a.groups.Doors)
}

// Ready reports whether a model with a paintable body is loaded.
func (a *App) Ready() bool {
	return a.groups.Ready()
}

// OpenDoors starts opening the doors and returns how many there are.
func (a *App) OpenDoors() int {
	n := a.doorCount()
	if n == 0 {
		a.slog.Info("Model has no door nodes")
		return 0
	}
	a.doorsOpen = true
	return n
}

// SetBody selects the body material and applies it.
func (a *App) SetBody(m *material.Material) {
	a.sel.Body = m
	a.apply()
}

// SetRims selects the rim material and applies it.
func (a *App) SetRims(m *material.Material) {
	a.sel.Rims = m
	a.apply()
}

// SetGlass selects the glass material and applies it.
func (a *App) SetGlass(m *material.Material) {
	a.sel.Glass = m
	a.apply()
}

// SetLighting activates preset. It is called by the chat router.
func (a *App) SetLighting(preset string) bool {
	return a.lights.SetActive(preset)
}

// Listen starts one push-to-talk transcription in the background. The result arrives as
// a VoiceResult or VoiceFailed event. It returns false when voice is unavailable or a
// recording is already being transcribed.
func (a *App) Listen(ctx context.Context, tr voice.Transcriber) bool {
	if tr == nil || !tr.Available() {
		a.log.Log(logger.System, "Voice input is not available.")
		return false
	}
	if !a.listening.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		var ev Event
		text, err := tr.Transcribe(ctx)
		if err != nil {
			ev = VoiceFailed{Err: err}
		} else {
			ev = VoiceResult{Text: text}
		}
		if !a.Deliver(ctx, ev) {
			a.listening.Store(false)
		}
	}()
	return true
}

// Update advances the door animation and, with the follow camera on, the car and
// camera.
func (a *App) Update(dt float32, in drive.Input) {
	target := float32(0)
	if a.doorsOpen {
		target = 1
	}
	step := doorSpeed * dt
	switch {
	case a.doorFrac < target:
		a.doorFrac = min(a.doorFrac+step, target)
	case a.doorFrac > target:
		a.doorFrac = max(a.doorFrac-step, target)
	}
	if a.follow {
		a.vehicle.Step(dt, in)
		a.camera.Update(a.vehicle, dt)
	}
}

// Route sends a phrase straight through the chat router, bypassing the queue. Only the
// goroutine that drains may call it.
func (a *App) Route(text string) chat.Outcome {
	return a.router.Route(text)
}

// Root returns the loaded node tree, nil before the first model.
func (a *App) Root() *model.Node { return a.root }

// ModelPath returns the path of the loaded model.
func (a *App) ModelPath() string { return a.modelPath }

// Groups returns the classification of the loaded model.
func (a *App) Groups() *parts.Groups { return a.groups }

// Selection returns the current material picks.
func (a *App) Selection() paint.Selection { return a.sel }

// Library returns the material library in use.
func (a *App) Library() *material.Library { return a.lib }

// Lighting returns the lighting preset selector.
func (a *App) Lighting() *lighting.Selector { return a.lights }

// Log returns the conversation log.
func (a *App) Log() *logger.Logger { return a.log }

// Router returns the chat router.
func (a *App) Router() *chat.Router { return a.router }

// Follow reports whether the follow camera is on.
func (a *App) Follow() bool { return a.follow }

// Listening reports whether a voice recording is being transcribed.
func (a *App) Listening() bool { return a.listening.Load() }

// Vehicle returns the drivable car body.
func (a *App) Vehicle() *drive.Vehicle { return a.vehicle }

// Camera returns the follow camera.
func (a *App) Camera() *drive.FollowCamera { return a.camera }

// DoorsOpen reports whether the doors are opening or open.
func (a *App) DoorsOpen() bool { return a.doorsOpen }

// DoorFraction returns how far the doors are open, from 0 to 1.
func (a *App) DoorFraction() float32 { return a.doorFrac }
