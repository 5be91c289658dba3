package notify

import (
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/gen2brain/beeep"
)

// Desktop delivers notifications through the OS notification center.
type Desktop struct {
	enabled bool
	log     *slog.Logger
	notify  func(title, body string) error
	capable func() bool

	mu         sync.Mutex
	requested  bool
	permission Permission
	wg         sync.WaitGroup
}

func NewDesktop(enabled bool, log *slog.Logger) *Desktop {
	if log == nil {
		log = slog.Default()
	}
	return &Desktop{
		enabled: enabled,
		log:     log,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
		capable: hasDisplay,
	}
}

// RequestPermission resolves once and caches the answer.
func (d *Desktop) RequestPermission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.requested {
		return d.permission
	}
	d.requested = true

	switch {
	case !d.enabled:
		d.permission = Denied
		d.log.Debug("notifications disabled by config")
	case !d.capable():
		d.permission = Denied
		d.log.Info("notifications unavailable: no display")
	default:
		d.permission = Granted
	}
	return d.permission
}

func (d *Desktop) Send(title, body string) {
	if d.RequestPermission() != Granted {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.notify(title, body); err != nil {
			d.log.Warn("notification dropped", "error", &Error{Title: title, Err: err})
		}
	}()
}

// Wait blocks until in-flight deliveries return.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

func hasDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	default:
		return true
	}
}
