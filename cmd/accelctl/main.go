package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/accelctl/accelctl/internal/pkg/curve"
	"github.com/accelctl/accelctl/internal/pkg/editor"
	"github.com/accelctl/accelctl/internal/pkg/input"
	"github.com/accelctl/accelctl/internal/pkg/logger"
	"github.com/accelctl/accelctl/internal/pkg/render"
	"github.com/accelctl/accelctl/internal/pkg/xinput"
	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var (
	force256 = flag.Bool("256", false, "force 256 color mode")
	nocolor  = flag.Bool("nocolor", false, "disable color")
	logLevel = flag.Int("loglevel", 3,
		"logging level, each level enables additional information class (0-3, default: 3)\n"+
			"\navailable options:\n"+
			"0: errors only\n"+
			"1: warnings\n"+
			"2: general info (device list, config reloads)\n"+
			"3: action events (applied curves, preset switches)",
	)
	deviceName = flag.String("device", "", "xinput device name, skips device auto-selection")
	plot       = flag.Bool("plot", false, "decode the embedded SmoothMouse driver tables, print the curve and exit")
	silent     = flag.Bool("silent", false, "no output logging")
)

func init() {
	flag.Parse()
}

type app struct {
	g   *gocui.Gui
	cfg AccelConfig
	ed  *editor.Editor
	au  aurora.Aurora

	conf      xinput.Configurator
	devices   []string
	deviceIdx int

	additive bool

	presets     map[string][]curve.Point
	presetNames []string
	presetIdx   int
}

func newApp(g *gocui.Gui, cfg AccelConfig) *app {
	a := &app{
		g:    g,
		cfg:  cfg,
		au:   aurora.NewAurora(!*nocolor),
		conf: xinput.New(),
	}

	a.ed = editor.New(render.View{
		PointRadius: cfg.Canvas.PointRadius,
		HumanLabels: cfg.Canvas.HumanLabels,
	})
	a.ed.AdjustStep = cfg.App.AdjustStep
	a.ed.Model().SetLockLow(cfg.Device.LockLow)
	a.ed.OnChange(a.changed)

	a.reloadPresets()
	a.rescanDevices()
	return a
}

func (a *app) reloadPresets() {
	a.presets = loadUserPresets()
	a.presetNames = a.presetNames[:0]
	for name := range a.presets {
		a.presetNames = append(a.presetNames, name)
	}
	sort.Strings(a.presetNames)
	a.presetIdx = 0
}

// rescanDevices asks the X server first and falls back to the kernel
// device list. Enumeration failure means an empty list, never an abort.
func (a *app) rescanDevices() {
	devices, err := a.conf.Devices()
	if err != nil {
		log.Info(fmt.Sprintf("device enumeration failed: %v", err), logger.Warning)
		devices = nil
	}
	if len(devices) == 0 {
		names, err := input.Pointers()
		if err != nil {
			log.Info(fmt.Sprintf("kernel device enumeration failed: %v", err), logger.Warning)
		} else {
			devices = xinput.FilterPointerNames(names)
		}
	}

	a.devices = devices
	a.deviceIdx = 0
	for i, d := range devices {
		if d == a.cfg.Device.Preferred {
			a.deviceIdx = i
			break
		}
	}
	log.Info(fmt.Sprintf("%d pointer device(s) found", len(devices)), logger.Info)
}

func (a *app) currentDevice() string {
	if *deviceName != "" {
		return *deviceName
	}
	if len(a.devices) == 0 {
		return ""
	}
	return a.devices[a.deviceIdx]
}

// changed runs after every model mutation: redraw, then fire-and-forget
// device configuration. Failures are reported and never touch the model.
func (a *app) changed() {
	a.redraw()
	a.autoApply()
}

func (a *app) autoApply() {
	device := a.currentDevice()
	if device == "" {
		return
	}
	outputs := a.ed.Model().Outputs()
	go func() {
		if err := a.conf.Apply(device, outputs); err != nil {
			log.Info(fmt.Sprintf("cannot apply curve: %v", err), zap.String("device", device), logger.Error)
			return
		}
		log.Info("curve applied", zap.String("device", device), logger.Action)
	}()
}

func (a *app) redraw() {
	vc, err := a.g.View(ViewCurve)
	if err != nil {
		return
	}
	w, h := vc.Size()

	view := a.ed.View()
	view.Transform = render.Transform{
		Width:  float64(w),
		Height: float64(h),
		Margin: a.cfg.Canvas.Margin,
	}
	a.ed.SetView(view)

	surface := render.NewCellSurface(w, h)
	view.Draw(a.ed.Model(), surface)
	vc.Clear()
	fmt.Fprint(vc, surface.String(a.au))

	a.redrawPoints()
	a.redrawDevices()
}

func (a *app) redrawPoints() {
	v, err := a.g.View(ViewPoints)
	if err != nil {
		return
	}
	v.Clear()

	m := a.ed.Model()
	names := m.PointNames()
	for i, p := range m.Points() {
		marker := " "
		if m.Selected(i) {
			marker = "*"
		}
		if m.Locked(i) {
			marker = "L"
		}
		fmt.Fprintf(v, "%s %-16s (%.2f, %.2f)\n", marker, names[i], p.Input, p.Output)
	}

	opts := a.ed.Options()
	fmt.Fprintf(v, "\n[w]indows:%v [b]oost:%v [c]ap:%v\n", opts.WindowsCurve, opts.NonlinearBoost, opts.AccelerationCap)
	fmt.Fprintf(v, "[l]ock low:%v  additive [s]el:%v\n", m.LockLow(), a.additive)
	if len(a.presetNames) > 0 {
		fmt.Fprintf(v, "[u]ser preset: %s\n", a.presetNames[a.presetIdx])
	}
	fmt.Fprintf(v, "\n1-4/tab select  arrows move\n+/- adjust  d device  a apply  q quit\n")
}

func (a *app) redrawDevices() {
	v, err := a.g.View(ViewDevices)
	if err != nil {
		return
	}
	v.Clear()

	if len(a.devices) == 0 && *deviceName == "" {
		fmt.Fprint(v, "no pointer device found")
		return
	}
	current := a.currentDevice()
	for _, d := range a.devices {
		if d == current {
			fmt.Fprintf(v, "[%s] ", colorForString(a.au, d).String())
		} else {
			fmt.Fprintf(v, " %s  ", d)
		}
	}
	if *deviceName != "" {
		fmt.Fprintf(v, "(forced: %s)", current)
	}
}

// nudgeStep returns the function-space delta of one cell.
func (a *app) nudgeStep() (float64, float64) {
	t := a.ed.View().Transform
	x0, y0 := t.ToFunction(0, 1)
	x1, y1 := t.ToFunction(1, 0)
	return x1 - x0, y1 - y0
}

func (a *app) bindKeys(g *gocui.Gui) error {
	bind := func(key interface{}, fn func()) error {
		return g.SetKeybinding("", key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
			fn()
			return nil
		})
	}

	bindings := []struct {
		key interface{}
		fn  func()
	}{
		{'w', a.ed.ToggleWindows},
		{'b', a.ed.ToggleBoost},
		{'c', a.ed.ToggleCap},
		{'l', a.ed.ToggleLockLow},
		{'s', func() { a.additive = !a.additive; a.redraw() }},
		{gocui.KeyTab, a.ed.SelectNext},
		{'+', a.ed.Increase},
		{'=', a.ed.Increase},
		{'-', a.ed.Decrease},
		{'_', a.ed.Decrease},
		{gocui.KeyArrowLeft, func() { dx, _ := a.nudgeStep(); a.ed.NudgeSelected(-dx, 0) }},
		{gocui.KeyArrowRight, func() { dx, _ := a.nudgeStep(); a.ed.NudgeSelected(dx, 0) }},
		{gocui.KeyArrowUp, func() { _, dy := a.nudgeStep(); a.ed.NudgeSelected(0, dy) }},
		{gocui.KeyArrowDown, func() { _, dy := a.nudgeStep(); a.ed.NudgeSelected(0, -dy) }},
		{'d', a.nextDevice},
		{'r', func() { a.rescanDevices(); a.redraw() }},
		{'a', a.autoApply},
		{'u', a.nextPreset},
	}
	for i := 0; i < 4; i++ {
		index := i
		bindings = append(bindings, struct {
			key interface{}
			fn  func()
		}{rune('1' + i), func() { a.ed.Select(index, a.additive) }})
	}

	for _, b := range bindings {
		if err := bind(b.key, b.fn); err != nil {
			return err
		}
	}

	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		return err
	}
	if err := g.SetKeybinding(ViewCurve, gocui.MouseLeft, gocui.ModNone, a.mouseLeft); err != nil {
		return err
	}
	return g.SetKeybinding(ViewCurve, gocui.MouseRelease, gocui.ModNone, a.mouseRelease)
}

func (a *app) mouseLeft(g *gocui.Gui, v *gocui.View) error {
	cx, cy := v.Cursor()
	if a.ed.Dragging() {
		a.ed.Drag(float64(cx), float64(cy))
		return nil
	}
	a.ed.Press(float64(cx), float64(cy), a.additive)
	return nil
}

func (a *app) mouseRelease(g *gocui.Gui, v *gocui.View) error {
	a.ed.Release()
	return nil
}

func (a *app) nextDevice() {
	if len(a.devices) == 0 {
		return
	}
	a.deviceIdx = (a.deviceIdx + 1) % len(a.devices)
	log.Info("device selected", zap.String("device", a.currentDevice()), logger.Action)
	a.changed()
}

func (a *app) nextPreset() {
	if len(a.presetNames) == 0 {
		return
	}
	name := a.presetNames[a.presetIdx]
	a.presetIdx = (a.presetIdx + 1) % len(a.presetNames)

	if err := a.ed.LoadPoints(a.presets[name]); err != nil {
		log.Info(fmt.Sprintf("cannot load preset %q: %v", name, err), logger.Warning)
		return
	}
	log.Info(fmt.Sprintf("preset %q loaded", name), logger.Action)
}

// reloadConfig re-reads the config without letting a malformed file
// kill the session.
func reloadConfig(path string) (cfg AccelConfig, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return LoadConfig(path), nil
}

func (a *app) monitorConfig(ctx context.Context) {
	for range DetectConfigChanges(ctx) {
		cfg, err := reloadConfig(configDir + "/accelctl.config")
		if err != nil {
			log.Info(fmt.Sprintf("config reload failed: %v", err), logger.Warning)
			continue
		}
		a.g.Update(func(*gocui.Gui) error {
			a.cfg = cfg
			a.ed.AdjustStep = cfg.App.AdjustStep
			a.ed.Model().SetLockLow(cfg.Device.LockLow)
			a.reloadPresets()
			a.redraw()
			log.Info("config reloaded", logger.Info)
			return nil
		})
	}
}

func runPlot(cfg AccelConfig) int {
	go func() {
		for range logger.Messages {
		}
	}()

	points, err := curve.ZipTables(curve.SmoothMouseXCurve, curve.SmoothMouseYCurve)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot decode curve tables: %v\n", err)
		return 1
	}

	w, h := cfg.Canvas.PlotWidth, cfg.Canvas.PlotHeight
	surface := render.NewCellSurface(w, h)
	render.DrawSamples(points, float64(w), float64(h), cfg.Canvas.Margin, surface)
	fmt.Print(surface.String(aurora.NewAurora(!*nocolor)))
	return 0
}

func main() {
	if *force256 {
		os.Setenv("TERM", "xterm-256color")
	}

	err := createConfigDirectoryIfNeeded()
	if err != nil {
		panic(err)
	}
	cfg := LoadConfig(configDir + "/accelctl.config")

	if *plot {
		os.Exit(runPlot(cfg))
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, err := GetCli()
	if err != nil {
		panic(err)
	}
	defer g.Close()

	a := newApp(g, cfg)
	if err := a.bindKeys(g); err != nil {
		panic(err)
	}

	if *silent {
		go func() {
			for range logger.Messages {
			}
		}()
	} else {
		go logView(g, !*nocolor, *logLevel, cfg.App.LogBufferSize)
	}

	go a.monitorConfig(ctx)

	go func() {
		<-sigs
		g.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()

	// periodic refresh keeps the log view moving even when idle
	go func() {
		for {
			g.Update(Layout)
			time.Sleep(cfg.App.LogViewRate)
		}
	}()

	// initial render once the views exist
	g.Update(func(*gocui.Gui) error {
		a.changed()
		return nil
	})

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		panic(err)
	}
}
