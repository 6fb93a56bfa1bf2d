package main

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-system/internal/assets"
	"solar-system/internal/body"
	"solar-system/internal/catalog"
	"solar-system/internal/config"
	"solar-system/internal/debug"
	"solar-system/internal/graphics"
	"solar-system/internal/logger"
	"solar-system/internal/navigation"
	"solar-system/internal/render"
	"solar-system/internal/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	prefs, cfgErr := config.Load()
	log := logger.New(prefs.LogFile)
	if cfgErr != nil {
		log.Logf("%v; using defaults.", cfgErr)
	}
	rl.SetTraceLogCallback(func(level int, text string) {
		if rl.TraceLogLevel(level) >= rl.LogInfo {
			log.Logf("raylib: %s", text)
		}
	})

	data, closer, err := assets.OpenData(prefs.DataDir)
	if err != nil {
		log.Logf("%v", err)
		return err
	}
	defer closer.Close()

	cat, err := catalog.Load(data)
	if err != nil {
		log.Logf("%v", err)
		return err
	}
	lib := assets.NewLibrary(data)
	reg, err := cat.Build(lib, func(b *body.Body) {
		log.Logf("%s loaded.", b.Name)
	})
	if err != nil {
		log.Logf("%v", err)
		return err
	}

	state, err := scene.New(reg, cat.FocusName(), prefs.FPS, time.Now(), log)
	if err != nil {
		log.Logf("%v", err)
		return err
	}
	nav := navigation.New(state.Camera, state.Do)

	overlay := debug.New()
	overlay.SetShowFPS(prefs.ShowFPS)
	overlay.SetShowOverlay(prefs.ShowOverlay)

	var seq *render.Sequencer
	setup := func() error {
		s, err := render.Load(reg, lib, prefs.ShadowMap)
		if err != nil {
			log.Logf("%v", err)
			return err
		}
		seq = s
		log.Logf("Shadow maps ready (%d×%d).", prefs.ShadowMap, prefs.ShadowMap)
		return nil
	}
	draw := func() {
		w, h := graphics.FramebufferSize()
		seq.Draw(state.Plan(w, h))
		overlay.Draw(debug.Status{
			Mode:     state.Camera.Mode().String(),
			Target:   state.Camera.LookAt().Name,
			Distance: state.Camera.Distance,
			Paused:   state.Paused,
		})
	}
	update := func() {
		graphics.PollInput(nav)
		state.Update(time.Now())
	}
	teardown := func() {
		seq.Unload()
	}
	return graphics.Run(prefs, setup, update, draw, teardown)
}
