package game

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"mini-splash/internal/config"
	"mini-splash/internal/graphics"
	"mini-splash/internal/netx"
	"mini-splash/internal/overlay"
	"mini-splash/internal/resource"
)

// Session is one loading phase: a resource reload and the splash that shows it.
type Session struct {
	Reload  *resource.Reload
	Overlay *overlay.Overlay

	cancel   context.CancelFunc
	reported bool
}

// SessionDeps are the app services a loading session uses.
type SessionDeps struct {
	Textures *graphics.TextureManager
	Screens  overlay.ScreenSetter
	Pointer  overlay.PointerState
	Bus      overlay.Publisher
}

// NewSession registers the splash assets, starts the reload and builds the
// overlay. The caller shows Overlay through its screen manager.
func NewSession(ctx context.Context, cfg config.Config, deps SessionDeps) *Session {
	overlay.RegisterAssets(deps.Textures)

	fetcher := resource.NewFetcher(cfg.Resources.CacheDir, cfg.Resources.Timeout, nil,
		netx.ProgressListenerFunc(func(read, total int64, done bool) {}))

	tasks := fetcher.Tasks(cfg.Resources.Remote, func(url, p string) error {
		if !strings.EqualFold(path.Ext(p), ".png") {
			return nil
		}
		deps.Textures.Register(remoteTextureID(url), graphics.FileSource(p))
		return nil
	})
	tasks = append(tasks, resource.Task{
		Name:   "upload textures",
		Weight: 1,
		Run: func(ctx context.Context) error {
			return waitForTextures(ctx, deps.Textures)
		},
	})

	ctx, cancel := context.WithCancel(ctx)
	reload := resource.NewReload(cfg.Splash.MinDuration, tasks...)
	reload.Start(ctx)

	ov := overlay.New(overlay.Options{
		Progress:         reload,
		Assets:           deps.Textures,
		Screens:          deps.Screens,
		Pointer:          deps.Pointer,
		Bus:              deps.Bus,
		HidingAppearance: config.IsHidingAppearance,
		SkipLabel:        cfg.Splash.SkipLabel,
		Wordmark:         strings.ToUpper(cfg.Window.Title),
	})

	return &Session{Reload: reload, Overlay: ov, cancel: cancel}
}

// remoteTextureID names a fetched image, e.g. "minisplash:remote/banner.png".
func remoteTextureID(url string) graphics.Identifier {
	return graphics.Identifier(fmt.Sprintf("%s:remote/%s", graphics.DefaultNamespace, path.Base(url)))
}

// waitForTextures blocks until the render thread has uploaded or dropped every
// registered texture. Dropped textures are reported as the error.
func waitForTextures(ctx context.Context, tm *graphics.TextureManager) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if tm.Readiness() == graphics.Ready {
			return tm.Failures()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Finished reports whether the splash is gone and the reload has finished.
// The reload error, if any, is logged the first time both hold.
func (s *Session) Finished() bool {
	select {
	case <-s.Reload.Done():
	default:
		return false
	}
	if s.Overlay.Dismissed() == overlay.NotDismissed {
		return false
	}
	if !s.reported {
		s.reported = true
		if err := s.Reload.Err(); err != nil {
			log.Printf("loading finished with errors: %v", err)
		}
	}
	return true
}

// Cleanup cancels the reload if it is still running.
func (s *Session) Cleanup() {
	s.cancel()
}
