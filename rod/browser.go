package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of rendered pages after which the
// browser process is replaced.
const DefaultRecycleAfter = 75

// browser owns a headless Chrome process and replaces it after a number of
// rendered pages. Chrome's memory use grows with every page and does not
// return to its baseline.
type browser struct {
	mu       sync.Mutex
	rod      *rod.Browser
	launcher *launcher.Launcher

	pages        atomic.Int64
	recycleAfter int64
}

func newBrowser(recycleAfter int64) (*browser, error) {
	b := &browser{recycleAfter: recycleAfter}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// current returns the live browser, recycling it first when the page
// budget is spent. Returns nil after close.
func (b *browser) current() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rod != nil && b.recycleAfter > 0 && b.pages.Load() >= b.recycleAfter {
		b.recycle()
	}
	return b.rod
}

// rendered records one finished page.
func (b *browser) rendered() {
	b.pages.Add(1)
}

func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("lang", "tr-TR").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.rod = r
	b.launcher = l
	return nil
}

// recycle starts a fresh browser and closes the old one. The old browser
// is kept if the new one fails to start. Must be called with mu held.
func (b *browser) recycle() {
	oldRod, oldLauncher := b.rod, b.launcher
	if err := b.launch(); err != nil {
		b.rod, b.launcher = oldRod, oldLauncher
		return
	}
	_ = oldRod.Close()
	oldLauncher.Kill()
	b.pages.Store(0)
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.rod != nil {
		err = b.rod.Close()
		b.rod = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
