// Package debug draws the frame statistics overlay toggled with F3.
package debug

import (
	"fmt"
	"strings"
	"time"

	"mini-splash/internal/event"
	"mini-splash/internal/profiling"
	"mini-splash/internal/screen"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const historyLen = 60

// Subscriber is the part of the event bus the overlay needs.
type Subscriber interface {
	Subscribe(fn event.Handler) uuid.UUID
	Unsubscribe(id uuid.UUID)
}

// FrameStats keeps a rolling frame time history fed by splash render events
// and draws it, with the top profiling entries, when profiling is enabled.
type FrameStats struct {
	history []time.Duration
	avg     time.Duration
	minD    time.Duration
	maxD    time.Duration

	sub Subscriber
	id  uuid.UUID
}

// NewFrameStats creates the overlay and subscribes it to sub.
func NewFrameStats(sub Subscriber) *FrameStats {
	fs := &FrameStats{sub: sub}
	fs.id = sub.Subscribe(fs.handle)
	return fs
}

// Detach unsubscribes from the bus.
func (fs *FrameStats) Detach() {
	fs.sub.Unsubscribe(fs.id)
}

func (fs *FrameStats) handle(e event.Event) {
	ev, ok := e.(event.ScreenRenderEvent)
	if !ok {
		return
	}
	fs.Record(time.Duration(float64(ev.Delta) * float64(time.Second)))
	if profiling.Enabled() && ev.Surface != nil {
		fs.Draw(ev.Surface)
	}
}

// Record adds one frame time to the history.
func (fs *FrameStats) Record(d time.Duration) {
	if len(fs.history) >= historyLen {
		fs.history = fs.history[1:]
	}
	fs.history = append(fs.history, d)

	var total time.Duration
	fs.minD, fs.maxD = d, d
	for _, v := range fs.history {
		total += v
		fs.minD = min(fs.minD, v)
		fs.maxD = max(fs.maxD, v)
	}
	fs.avg = total / time.Duration(len(fs.history))
}

// Frames returns how many frames are in the history.
func (fs *FrameStats) Frames() int { return len(fs.history) }

// Lines returns the text the overlay draws.
func (fs *FrameStats) Lines() []string {
	lines := make([]string, 0, 16)
	fps := 0
	if fs.avg > 0 {
		fps = int(time.Second / fs.avg)
	}
	lines = append(lines, fmt.Sprintf("FPS: %d", fps))
	lines = append(lines, fmt.Sprintf("Frame: %s avg, %s min, %s max",
		profiling.FormatMs(fs.avg), profiling.FormatMs(fs.minD), profiling.FormatMs(fs.maxD)))

	if top := profiling.TopN(8); top != "" {
		for line := range strings.SplitSeq(top, ", ") {
			if !strings.HasSuffix(line, ":0ms") {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// Draw renders the stats at the top-left of s.
func (fs *FrameStats) Draw(s screen.Surface) {
	lines := fs.Lines()
	s.FillARGB(4, 4, 360, 8+len(lines)*17, 0x90000000)
	y := float32(20)
	for _, l := range lines {
		s.DrawText(l, 10, y, 0.375, mgl32.Vec3{1, 1, 1})
		y += 17
	}
}
