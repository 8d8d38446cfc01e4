package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rless/internal/reader"
	"github.com/kk-code-lab/rless/internal/scroll"
)

// Run paints the first page eagerly, starts the producers, and serves
// intents until Exit. Producer goroutines are abandoned on return; the
// process is done with the terminal by then.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.drawInitial()

	go app.pumpEvents()
	go app.listenExitSignals()
	if app.watcher != nil {
		go app.watchSource()
	}

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		select {
		case intent := <-app.intents:
			app.dispatch(intent)
		case <-sigContCh:
			app.resumeAfterStop()
		}
	}
}

// drawInitial paints the page at the origin before any producer runs.
func (app *Application) drawInitial() {
	rows, cols := app.dims()
	app.renderer.Draw(app.handler.Initial(rows, cols))
}

// pumpEvents translates terminal events into intents. Resize and the
// post-resume wake event both re-read the page at the current anchor.
func (app *Application) pumpEvents() {
	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			app.intents <- app.keymap.Translate(ev)
		case *tcell.EventResize:
			app.intents <- scroll.Reload
		case *tcell.EventInterrupt:
			app.intents <- scroll.Reload
		}
	}
}

// listenExitSignals turns termination signals into a regular Exit intent so
// teardown always runs through the dispatch loop.
func (app *Application) listenExitSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	app.intents <- scroll.Exit
}

// watchSource forwards file-change notifications as Refresh intents.
func (app *Application) watchSource() {
	for {
		select {
		case ev, ok := <-app.watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				app.intents <- scroll.Refresh
			}
		case err, ok := <-app.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch %s: %v", app.src.Path(), err)
		}
	}
}

// dispatch applies one intent. The viewport is measured fresh per intent so
// a resize that raced ahead of its Reload still lands on current dimensions.
func (app *Application) dispatch(intent scroll.Intent) {
	log.Printf("dispatch %s", intent)
	rows, cols := app.dims()

	if app.helpOpen {
		if intent == scroll.Exit {
			app.shouldQuit = true
			return
		}
		app.helpOpen = false
		app.drawDismissingHelp(rows, cols)
		return
	}

	switch intent {
	case scroll.Exit:
		app.shouldQuit = true
	case scroll.ToggleHelp:
		app.helpOpen = true
		app.renderer.DrawHelp(app.keymap.Bindings())
	case scroll.Suspend:
		app.suspendToShell()
		app.resumeAfterStop()
	case scroll.Refresh:
		app.refreshSource()
		app.renderer.Draw(app.handler.Apply(scroll.Reload, rows, cols))
	default:
		app.renderer.Draw(app.handler.Apply(intent, rows, cols))
	}
}

// drawDismissingHelp restores the page under the overlay. A nil page would
// leave the overlay onscreen, so it degrades to a blank frame instead.
func (app *Application) drawDismissingHelp(rows, cols int) {
	page := app.handler.Apply(scroll.Reload, rows, cols)
	if page == nil {
		page = &reader.Page{}
	}
	app.renderer.Draw(page)
}

// refreshSource remaps the input and rebuilds the line index over the new
// buffer. On failure the old buffer stays live and the refresh degrades to a
// plain reload.
func (app *Application) refreshSource() {
	if err := app.src.Remap(); err != nil {
		log.Printf("refresh %s: %v", app.src.Path(), err)
		return
	}
	log.Printf("refresh %s: %d bytes", app.src.Path(), len(app.src.Bytes()))
	app.handler.SetReader(reader.New(app.src.Bytes()))
}
