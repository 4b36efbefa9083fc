// Command demo runs the example game on the harness.
//
// Assets are generated into ./data with go generate. A session can be
// recorded with -record and played back without a window with -replay.
package main

//go:generate go run ./internal/genassets -out data

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/application/game"
	"github.com/younwookim/harness/internal/application/replay"
	"github.com/younwookim/harness/internal/infrastructure/config"
	"github.com/younwookim/harness/internal/infrastructure/logging"
	"github.com/younwookim/harness/internal/infrastructure/platform"
	"github.com/younwookim/harness/internal/infrastructure/platform/ebitenplatform"
	"github.com/younwookim/harness/internal/infrastructure/platform/headless"
)

//go:embed configs
var configFS embed.FS

func main() {
	configFlag := flag.String("config", "", "Configuration file (.json or .toml); the embedded harness.json by default")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay a recorded session without a window")
	dataFlag := flag.String("data", "", "Asset directory, overrides the configured search paths")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	if *dataFlag != "" {
		dir, err := filepath.Abs(*dataFlag)
		if err != nil {
			log.Fatal("resolve data directory", "err", err)
		}
		cfg.Resources.SearchPaths = []string{dir}
	}

	var (
		backend  platform.Backend
		replayer *replay.Replayer
		opts     []game.Option
	)
	switch {
	case *replayFlag != "":
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatal("load replay", "err", err)
		}
		replayer, err = replay.NewReplayer(*data)
		if err != nil {
			log.Fatal("load replay", "err", err)
		}
		// replays run as fast as the recorded timings allow
		cfg.Loop.UpdateRate = replayer.UpdateRate()
		cfg.Loop.MaxFPS = 0
		cfg.Resources.HotReload = false
		var pads []headless.Option
		for _, id := range replayer.Gamepads() {
			pads = append(pads, headless.WithGamepad(id, fmt.Sprintf("replay gamepad %d", id)))
		}
		backend = headless.New(replayer, pads...)
	default:
		backend = ebitenplatform.New()
	}

	var recorder *replay.Recorder
	if *recordFlag != "" {
		recorder = replay.NewRecorder(cfg.Loop.UpdateRate)
		opts = append(opts, game.WithRecorder(recorder))
	}

	logger := logging.New(cfg.Log, nil)
	opts = append(opts, game.WithLogger(logger))

	h, err := game.New(*cfg, backend, opts...)
	if err != nil {
		logger.Fatal("start harness", "err", err)
	}
	demo, err := NewDemo(h, logger)
	if err != nil {
		if cerr := h.Close(); cerr != nil {
			logger.Error("close harness", "err", cerr)
		}
		logger.Fatal("start demo", "err", err)
	}

	runErr := h.Run()

	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(*recordFlag); err != nil {
			logger.Error("save recording", "err", err)
		} else {
			logger.Info("recording saved", "file", *recordFlag, "frames", recorder.FrameCount())
		}
	}
	if runErr != nil {
		logger.Fatal("run", "err", runErr)
	}

	if replayer != nil {
		fmt.Printf("replayed %d/%d frames, %d updates, score %d\n",
			replayer.CurrentFrame(), replayer.TotalFrames(), h.Steps(), demo.Score())
	}
}

func loadConfig(name string) (*config.Config, error) {
	if name != "" {
		return config.LoadFile(name)
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").Load("harness.json")
}
