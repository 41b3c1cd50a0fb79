// PrintQuote - 3D Print Cost Calculator
//
// A cross-platform desktop application that estimates the cost and sale
// price of a 3D print from filament, electricity, machine wear and
// shipping, keeping its settings and filament catalog in a local JSON file.
//
// Build:
//   go build -o printquote ./cmd/printquote
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o printquote.exe ./cmd/printquote
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintQuote/internal/config"
	"github.com/piwi3910/PrintQuote/internal/logger"
	"github.com/piwi3910/PrintQuote/internal/model"
	"github.com/piwi3910/PrintQuote/internal/project"
	"github.com/piwi3910/PrintQuote/internal/session"
	"github.com/piwi3910/PrintQuote/internal/ui"
)

func main() {
	opts := config.Load()

	log, err := logger.New(opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "printquote: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	store := project.NewConfigStore(opts.ConfigPath(), log)
	sess := session.New(store, log)
	log.Info("starting", zap.String("config", store.Path()), zap.String("version", ui.Version))

	application := app.NewWithID("com.piwi3910.printquote")
	application.Settings().SetTheme(ui.NewPrintQuoteTheme())

	window := application.NewWindow("PrintQuote - 3D Print Cost Calculator")

	appUI := ui.NewApp(window, sess, log)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(windowSize(sess.Settings().WindowGeometry))
	window.CenterOnScreen()

	window.SetCloseIntercept(appUI.Shutdown)

	window.ShowAndRun()
}

// windowSize parses the stored geometry, falling back to the default size.
func windowSize(geometry string) fyne.Size {
	w, h, err := model.ParseGeometry(geometry)
	if err != nil {
		w, h, _ = model.ParseGeometry(model.DefaultWindowGeometry)
	}
	return fyne.NewSize(float32(w), float32(h))
}
