// Command cosmos opens the token orbit viewer on a dataset fixture.
package main

import (
	"fmt"
	"os"

	"github.com/Chemberlein/ADA-Cosmos/engine"
	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/gpu"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/Chemberlein/ADA-Cosmos/engine/scene"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/Chemberlein/ADA-Cosmos/engine/window"
	"github.com/Chemberlein/ADA-Cosmos/internal/config"
	"github.com/Chemberlein/ADA-Cosmos/internal/dataset"
	"github.com/Chemberlein/ADA-Cosmos/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cosmos: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ds, err := dataset.Load(cfg.Dataset)
	if err != nil {
		return err
	}
	ds = ds.WithExplorerAddress(cfg.ExplorerAddress)

	w := window.NewWindow(
		window.WithTitle("ADA Cosmos"),
		window.WithSize(cfg.WindowWidth, cfg.WindowHeight),
		window.WithSizeLimits(window.SizeLimits{
			MinWidth:  cfg.WindowMinWidth,
			MinHeight: cfg.WindowMinHeight,
			MaxWidth:  cfg.WindowMaxWidth,
			MaxHeight: cfg.WindowMaxHeight,
		}),
	)

	gpuLogger := logger.With().Str("component", "gpu").Logger()
	backend, err := gpu.NewBackend(w.SurfaceDescriptor(), gpu.WithLogger(gpuLogger))
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	defer backend.Release()

	loop := scheduler.NewLoop(scheduler.WithLogger(logger.With().Str("component", "scheduler").Logger()))
	rig := camera.NewRig(camera.WithPose(scene.InitialPosition, scene.InitialLookAt))
	cam := camera.NewCamera(
		camera.WithViewport(w.Width(), w.Height()),
		camera.WithSurface(rig),
	)

	sceneLogger := logger.With().Str("component", "scene").Logger()
	s := scene.NewScene(loop,
		scene.WithSurface(rig),
		scene.WithCamera(cam),
		scene.WithUploader(backend),
		scene.WithLODDelays(cfg.LODBasicDelay, cfg.LODCompleteDelay),
		scene.WithFocusOptions(camera.WithTransition(cfg.FocusDuration, cfg.FocusDuration)),
		scene.WithSelectionCallback(func(r *entity.Ranked) {
			if r == nil {
				sceneLogger.Info().Msg("hub selected")
				return
			}
			sceneLogger.Info().Str("id", r.ID()).Str("ticker", r.Ticker).Int("rank", r.Rank).Msg("token selected")
		}),
		scene.WithLogger(sceneLogger),
	)
	if err := s.SetData(ds.Ranked, ds.Hub, ds.Explorer); err != nil {
		return err
	}

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithLoop(loop),
		engine.WithScene(s),
		engine.WithRig(rig),
		engine.WithCamera(cam),
		engine.WithTickRate(cfg.TickRate),
		engine.WithProfiling(cfg.Profiling),
		engine.WithFrameCallback(func(objects []*render.Object, _ []*resource.Label) {
			width, height := cam.Viewport()
			frame := gpu.Frame{
				ViewProjection: cam.ViewProjectionMatrix(),
				Eye:            rig.Pose().Position,
				Width:          width,
				Height:         height,
			}
			if err := backend.Draw(frame, objects); err != nil {
				gpuLogger.Warn().Err(err).Msg("frame dropped")
			}
		}),
		engine.WithLogger(logger.With().Str("component", "engine").Logger()),
	)

	logger.Info().
		Int("tokens", len(ds.Ranked)).
		Bool("hub", ds.Hub != nil).
		Bool("explorer", ds.Explorer.Valid()).
		Str("log_level", cfg.LogLevel).
		Msg("starting viewer")
	e.Run()
	return nil
}
