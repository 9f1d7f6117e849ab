package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/catalog"
	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/fyneui"
	"github.com/abworrall/skylayers/pkg/skyimage"
)

var (
	fCatalog string
	fConfig  string
	fObject  string
	fVerbose bool
)

func init() {
	flag.StringVar(&fCatalog, "catalog", "data/catalog.yml", "catalog of objects and their filter files")
	flag.StringVar(&fConfig, "config", "", "render config yaml (default: built in)")
	flag.StringVar(&fObject, "object", "", "object to show at startup")
	flag.BoolVar(&fVerbose, "v", false, "verbose logging")
}

func main() {
	flag.Parse()
	log.Printf("skyview starting\n")

	var l *zap.Logger
	var err error
	if fVerbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer l.Sync() //nolint:errcheck

	cat, err := catalog.Load(fCatalog)
	if err != nil {
		l.Fatal("load catalog", zap.String("path", fCatalog), zap.Error(err))
	}
	cat.Log = l

	cfg := skyimage.NewConfig()
	if fConfig != "" {
		if cfg, err = skyimage.LoadConfig(fConfig); err != nil {
			l.Fatal("load config", zap.String("path", fConfig), zap.Error(err))
		}
	}
	if fVerbose {
		cfg.Verbosity = 1
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	a := app.New()
	w := a.NewWindow("Sky Layers")

	list := fyneui.NewLayerList()
	display := fyneui.NewDisplay()

	var view *fyneui.PanelView
	panel := control.NewImageControlPanel(
		skyimage.NewLibrary(cat, cfg, l),
		fyneui.Toolkit{Window: w},
		list,
		display,
		control.Options{
			Log: l,
			OnPhase: func(ph control.Phase, object string) {
				if view != nil {
					view.SetPhase(ph, object)
				}
			},
			OnError: func(err error) {
				if view != nil {
					view.ShowError(err)
				}
			},
		})
	view = fyneui.NewPanelView(panel, w, list)

	split := container.NewHSplit(view.CanvasObject(), display.CanvasObject())
	split.SetOffset(0.3)
	w.SetContent(split)
	w.Resize(fyne.NewSize(1200, 800))

	if fObject != "" {
		view.Select(fObject)
	}

	w.ShowAndRun()
}
