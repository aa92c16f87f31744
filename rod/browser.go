package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/medroster"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is how many pages one Chrome process serves before a
// fresh one replaces it. A directory run renders thousands of profiles and
// Chrome's memory keeps growing across pages.
const DefaultRecycleAfter = 75

// Browser hands out tabs from a headless Chrome process and replaces the
// process every RecycleAfter tabs. A replaced process stays alive until its
// last open tab is released, so concurrent fetches are never cut off.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu           sync.Mutex
	current      *instance
	draining     []*instance
	recycleAfter int
	userAgent    string
	bin          string
	closed       bool
}

type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	open     int
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithRecycle sets how many tabs a Chrome process serves. Values below 1
// keep DefaultRecycleAfter.
func WithRecycle(n int) BrowserOption {
	return func(b *Browser) {
		b.recycleAfter = n
	}
}

// WithUserAgent overrides the user agent of every tab. Some directories
// serve an empty shell to the default headless user agent.
func WithUserAgent(ua string) BrowserOption {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// WithBin sets the Chrome executable. By default the launcher looks up a
// local install or downloads one.
func WithBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// NewBrowser launches headless Chrome. Close must be called when the
// Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(b)
	}
	if b.recycleAfter < 1 {
		b.recycleAfter = DefaultRecycleAfter
	}

	inst, err := b.launch()
	if err != nil {
		return nil, err
	}
	b.current = inst
	return b, nil
}

// Tab opens a blank tab. The returned release func closes the tab and must
// be called exactly once.
func (b *Browser) Tab() (*rod.Page, func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, nil, medroster.Errorf(medroster.EINVALID, "browser is closed")
	}
	if b.current.served >= b.recycleAfter {
		b.recycle()
	}
	inst := b.current
	inst.served++
	inst.open++
	b.mu.Unlock()

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.release(inst)
		return nil, nil, fmt.Errorf("open tab: %w", err)
	}
	if b.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
			_ = page.Close()
			b.release(inst)
			return nil, nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			b.release(inst)
		})
	}, nil
}

// Close shuts down every Chrome process, including ones still draining.
// Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.current.shutdown()
	for _, inst := range b.draining {
		_ = inst.shutdown()
	}
	b.draining = nil
	return err
}

// LauncherPID returns the process ID of the current Chrome launcher, or 0
// after Close.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.current.launcher == nil {
		return 0
	}
	return b.current.launcher.PID()
}

// recycle swaps in a fresh process. If the launch fails the current process
// keeps serving and the count restarts, so the next attempt comes after
// another recycleAfter tabs. Must be called with mu held.
func (b *Browser) recycle() {
	next, err := b.launch()
	if err != nil {
		b.current.served = 0
		return
	}
	old := b.current
	b.current = next
	if old.open == 0 {
		_ = old.shutdown()
		return
	}
	b.draining = append(b.draining, old)
}

func (b *Browser) release(inst *instance) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inst.open--
	if inst.open > 0 || inst == b.current || b.closed {
		return
	}
	for i, d := range b.draining {
		if d == inst {
			b.draining = append(b.draining[:i], b.draining[i+1:]...)
			_ = inst.shutdown()
			return
		}
	}
}

// launch starts Chrome with flags that keep background tabs rendering.
// Images are not needed to read profile text.
func (b *Browser) launch() (*instance, error) {
	l := launcher.New().
		Set("blink-settings", "imagesEnabled=false").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

func (inst *instance) shutdown() error {
	var err error
	if inst.browser != nil {
		err = inst.browser.Close()
		inst.browser = nil
	}
	if inst.launcher != nil {
		inst.launcher.Kill()
		inst.launcher = nil
	}
	return err
}
