// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Command cellvis visualizes the octree of a cell locator
// built over a sphere or a glTF mesh.
// A slider selects how many levels of the tree are shown.
// Interactions are replayed from a script or a sweep of
// depths, and every redraw is written to a frame file.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"

	"github.com/gviegas/cellvis/colors"
	"github.com/gviegas/cellvis/engine"
	"github.com/gviegas/cellvis/gltf"
	"github.com/gviegas/cellvis/interactor"
	"github.com/gviegas/cellvis/locator"
	"github.com/gviegas/cellvis/locatorviz"
	"github.com/gviegas/cellvis/mesh"
	"github.com/gviegas/cellvis/source"
	"github.com/gviegas/cellvis/widget"
)

var version = "v0.1.0"

// Keeps the config field names intact for the cli package.
var _ = reflect.TypeOf(config{})

type config struct {
	Theta        int     `cli:""        env:"CELLVIS_THETA"          help:"Sphere theta resolution."`
	Phi          int     `cli:""        env:"CELLVIS_PHI"            help:"Sphere phi resolution."`
	Input        string  `cli:""        env:"CELLVIS_INPUT"          help:"glTF file (.gltf or .glb) to use instead of the sphere."`
	CellsPerNode int     `cli:""        env:"CELLVIS_CELLS_PER_NODE" help:"Target number of cells per locator leaf."`
	MaxLevel     int     `cli:",hidden" env:"CELLVIS_MAX_LEVEL"      help:"Maximum locator tree depth."`
	Width        int     `cli:""        env:"CELLVIS_WIDTH"          help:"Window width in pixels."`
	Height       int     `cli:""        env:"CELLVIS_HEIGHT"         help:"Window height in pixels."`
	Out          string  `cli:""        env:"CELLVIS_OUT"            help:"Directory where frames are written."`
	Format       string  `cli:""        env:"CELLVIS_FORMAT"         help:"Frame format (png|bmp)."`
	Depths       string  `cli:""        env:"CELLVIS_DEPTHS"         help:"Comma separated slider values to sweep. Default is every depth."`
	Script       string  `cli:""        env:"CELLVIS_SCRIPT"         help:"YAML interaction script to replay instead of the sweep."`
	Animation    string  `cli:""        env:"CELLVIS_ANIMATION"      help:"Slider tube press behavior (off|jump|steps)."`
	Azimuth      float64 `cli:",hidden" env:"CELLVIS_AZIMUTH"        help:"Camera azimuth in degrees."`
	Elevation    float64 `cli:",hidden" env:"CELLVIS_ELEVATION"      help:"Camera elevation in degrees."`
	LogLevel     string  `cli:""        env:"CELLVIS_LOG_LEVEL"      help:"Log level (debug|info|warning|error)."`
	LogIndent    bool    `cli:""        env:"CELLVIS_LOG_INDENT"     help:"Indent logs."`
	Version      bool    `cli:""        env:"-"                      help:"Show version."`
	Help         bool    `cli:""        env:"-"                      help:"Show help."`
}

func main() {
	def := locator.DefaultOptions()
	conf := config{
		Theta:        10,
		Phi:          10,
		CellsPerNode: def.CellsPerNode,
		MaxLevel:     def.MaxLevel,
		Width:        640,
		Height:       480,
		Out:          "frames",
		Format:       "png",
		Animation:    "steps",
		LogLevel:     logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Visualizes the octree of a cell locator.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := run(ctx, conf); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf config) error {
	if conf.Input == "" && (conf.Theta < source.MinResolution || conf.Phi < source.MinResolution) {
		return errors.New("sphere resolution is too low").
			WithTag("theta", conf.Theta).
			WithTag("phi", conf.Phi).
			WithTag("min", source.MinResolution)
	}
	if conf.CellsPerNode < 1 {
		return errors.New("cells per node must be positive").WithTag("cells_per_node", conf.CellsPerNode)
	}
	if conf.MaxLevel < 0 {
		return errors.New("max level must not be negative").WithTag("max_level", conf.MaxLevel)
	}
	if conf.Width < 1 || conf.Height < 1 {
		return errors.New("invalid window size").
			WithTag("width", conf.Width).
			WithTag("height", conf.Height)
	}
	switch conf.Format {
	case "png", "bmp":
	default:
		return errors.New("invalid frame format").WithTag("format", conf.Format)
	}
	if _, err := animationMode(conf.Animation); err != nil {
		return err
	}
	if conf.Script != "" && conf.Depths != "" {
		return errors.New("have to specify either a script or depths, not both")
	}
	if _, err := parseDepths(conf.Depths); err != nil {
		return err
	}
	return nil
}

func animationMode(s string) (widget.AnimationMode, error) {
	switch s {
	case "off":
		return widget.AnimateOff, nil
	case "jump":
		return widget.AnimateJump, nil
	case "steps":
		return widget.AnimateSteps, nil
	}
	return 0, errors.New("invalid animation mode").WithTag("animation", s)
}

// parseDepths parses a comma separated list of slider
// values. An empty string yields nil.
func parseDepths(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ds []float64
	for _, f := range strings.Split(s, ",") {
		d, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.New("invalid depth").WithTag("depth", f).Wrap(err)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

// input returns the mesh whose cells are located.
func input(conf config) (*mesh.PolyData, error) {
	if conf.Input != "" {
		return gltf.Load(conf.Input)
	}
	s := source.NewSphere()
	s.ThetaResolution = conf.Theta
	s.PhiResolution = conf.Phi
	return s.Output(), nil
}

func run(ctx context.Context, conf config) error {
	pd, err := input(conf)
	if err != nil {
		return errors.New("loading input failed").Wrap(err)
	}

	opts := locator.DefaultOptions()
	opts.CellsPerNode = conf.CellsPerNode
	opts.MaxLevel = conf.MaxLevel
	loc := locator.Build(pd, opts)
	logs.WithTag("cells", pd.NumCells()).
		WithTag("level", loc.Level()).
		Info("cell locator built")

	surface := engine.NewActor(pd)
	surface.Property.SetInterpolationToFlat()
	surface.Property.Color = colors.MustLookup("MistyRose")

	rep := mesh.New()
	tree := engine.NewActor(rep)
	tree.Property.SetInterpolationToFlat()
	tree.Property.SetRepresentationToWireframe()
	tree.Property.Color = colors.MustLookup("Gold")

	ren := engine.NewRenderer()
	ren.Background = colors.MustLookup("DarkSlateGray")
	ren.AddActor(surface)
	ren.AddActor(tree)

	win, err := engine.NewOffscreen(conf.Width, conf.Height)
	if err != nil {
		return err
	}
	defer win.Close()
	if err := win.AddRenderer(ren); err != nil {
		return err
	}
	if err := os.MkdirAll(conf.Out, 0o755); err != nil {
		return errors.New("creating output directory failed").
			WithTag("out", conf.Out).
			Wrap(err)
	}
	win.SetSink(func(frame int, img image.Image) error {
		path := filepath.Join(conf.Out, fmt.Sprintf("frame-%03d.%s", frame, conf.Format))
		if err := engine.SaveImage(path, img); err != nil {
			return err
		}
		logs.WithTag("path", path).Debug("frame written")
		return nil
	})

	sliderRep := widget.NewSliderRepresentation()
	sliderRep.Title = "MaxPointsPerRegion"
	sliderRep.Point1 = [2]float64{0.2, 0.1}
	sliderRep.Point2 = [2]float64{0.8, 0.1}
	sliderRep.SliderLength = 0.075
	sliderRep.SliderWidth = 0.05
	sliderRep.EndCapLength = 0.05
	slider := widget.NewSliderWidget(sliderRep, win)
	if slider.Mode, err = animationMode(conf.Animation); err != nil {
		return err
	}

	iact := interactor.New(win)
	slider.Attach(iact, win)

	ctrl := locatorviz.New(loc, rep, win)
	ctrl.Bind(slider)

	// The whole mesh is in view, independent of the depth shown.
	ren.ResetCamera()
	ren.Camera.Azimuth(float32(conf.Azimuth))
	ren.Camera.Elevation(float32(conf.Elevation))
	win.Redraw()

	evs, err := events(conf, ctrl.MaxDepth())
	if err != nil {
		return err
	}
	iact.Push(evs...)
	if err := iact.Start(ctx); err != nil {
		return errors.New("interaction stopped").Wrap(err)
	}
	if err := win.Err(); err != nil {
		return err
	}

	logs.WithTag("frames", win.Frames()).
		WithTag("depth", ctrl.Depth()).
		WithTag("out", conf.Out).
		Info("done")
	return nil
}

// events returns the interactions to replay: the script,
// if any, or a Value event per depth of the sweep.
func events(conf config, maxDepth int) ([]interactor.Event, error) {
	if conf.Script != "" {
		f, err := os.Open(conf.Script)
		if err != nil {
			return nil, errors.New("opening script failed").
				WithTag("script", conf.Script).
				Wrap(err)
		}
		defer f.Close()
		return interactor.LoadScript(f)
	}
	ds, _ := parseDepths(conf.Depths)
	if ds == nil {
		for d := range maxDepth + 1 {
			ds = append(ds, float64(d))
		}
	}
	evs := make([]interactor.Event, 0, len(ds)+1)
	for _, d := range ds {
		evs = append(evs, interactor.Event{Kind: interactor.Value, Value: d})
	}
	return append(evs, interactor.Event{Kind: interactor.KeyPress, Key: interactor.KeyQ}), nil
}
