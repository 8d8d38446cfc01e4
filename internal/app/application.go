package app

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rless/internal/reader"
	"github.com/kk-code-lab/rless/internal/scroll"
	"github.com/kk-code-lab/rless/internal/source"
	"github.com/kk-code-lab/rless/internal/ui/input"
	"github.com/kk-code-lab/rless/internal/ui/render"
)

// intentBuffer bounds the intent queue. Producers block when the consumer
// falls behind rather than dropping input.
const intentBuffer = 100

// Fallback viewport when the terminal reports no usable size.
const (
	fallbackRows = 80
	fallbackCols = 80
)

// Application owns the terminal screen and every piece of mutable pager
// state. Producer goroutines reach it only through the intent channel.
type Application struct {
	screen     tcell.Screen
	src        *source.Source
	handler    *scroll.Handler
	renderer   *render.Renderer
	keymap     *input.Keymap
	intents    chan scroll.Intent
	watcher    *fsnotify.Watcher
	helpOpen   bool
	shouldQuit bool
}

// NewApplication initializes the terminal and assembles the pager over src.
func NewApplication(src *source.Source, keymap *input.Keymap) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newApplication(screen, src, keymap), nil
}

func newApplication(screen tcell.Screen, src *source.Source, keymap *input.Keymap) *Application {
	return &Application{
		screen:   screen,
		src:      src,
		handler:  scroll.NewHandler(reader.New(src.Bytes())),
		renderer: render.NewRenderer(screen),
		keymap:   keymap,
		intents:  make(chan scroll.Intent, intentBuffer),
		watcher:  newSourceWatcher(src),
	}
}

// newSourceWatcher watches the backing file when there is one. A watch that
// cannot be established is logged and the pager runs without live refresh.
func newSourceWatcher(src *source.Source) *fsnotify.Watcher {
	path, ok := src.WatchPath()
	if !ok {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watch %s: %v", path, err)
		return nil
	}
	if err := watcher.Add(path); err != nil {
		log.Printf("watch %s: %v", path, err)
		_ = watcher.Close()
		return nil
	}
	return watcher
}

// Close releases the terminal and the mapped source. The intent channel
// stays open: producers may still be blocked on a send, and the process is
// about to exit.
func (app *Application) Close() {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	app.screen.Fini()
	app.src.Close()
}

// dims reports the viewport as reader dimensions, falling back to a
// conventional size when the terminal reports nothing usable.
func (app *Application) dims() (rows, cols int) {
	w, h := app.screen.Size()
	if w <= 0 || h <= 0 {
		return fallbackRows, fallbackCols
	}
	return h, w
}
