package game

import (
	"log"

	"mini-splash/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/viper"
)

// SetupWindow creates the window with a GL 4.1 core context and makes it current.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// frame pacing is done by FPSLimiter
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return window, nil
}

// WatchConfig applies runtime settings whenever the config file changes.
func WatchConfig(v *viper.Viper) {
	config.Watch(v, func(c config.Config, err error) {
		if err != nil {
			log.Printf("config reload: %v", err)
			return
		}
		config.Apply(c)
		log.Printf("config reloaded: branding hidden=%v fps=%d", c.Splash.HideAppearance, c.Render.FPSLimit)
	})
}
