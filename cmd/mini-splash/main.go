package main

import (
	"context"
	"flag"
	"log"
	"runtime"

	"mini-splash/internal/config"
	"mini-splash/internal/game"
	"mini-splash/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $HOME/.config/mini-splash/config.toml)")
	flag.Parse()

	cfg, v, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	config.Apply(cfg)
	game.WatchConfig(v)

	ctx, cancel := context.WithCancel(context.Background())
	// runs on Ctrl+C as well as on normal exit
	closer.Bind(func() {
		cancel()
		log.Println("mini-splash: shut down")
	})
	defer closer.Close()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	app, err := game.NewApp(ctx, window, input.NewInputManager(), cfg)
	if err != nil {
		panic(err)
	}
	defer app.Close()

	game.SetupInputHandlers(app)
	app.Run()
}
