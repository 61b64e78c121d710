package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/accelctl/accelctl/internal/pkg/curve"
	"github.com/accelctl/accelctl/internal/pkg/logger"
	"github.com/go-ini/ini"
)

type App struct {
	LogViewRate   time.Duration
	LogBufferSize int
	AdjustStep    float64
}

type Canvas struct {
	PlotWidth, PlotHeight int
	Margin                float64
	PointRadius           float64
	HumanLabels           bool
}

type Device struct {
	Preferred string
	LockLow   bool
}

type AccelConfig struct {
	App    App
	Canvas Canvas
	Device Device
}

func LoadConfig(path string) AccelConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		panic(err)
	}

	var c AccelConfig

	// [accelctl]
	app, _ := cfg.GetSection("accelctl")
	logViewRate, _ := app.GetKey("log_view_rate")
	i, err := logViewRate.Int()
	if err != nil {
		panic(err)
	}
	c.App.LogViewRate = time.Second / time.Duration(i)

	logBufferSize, _ := app.GetKey("log_buffer_size")
	i, err = logBufferSize.Int()
	if err != nil {
		panic(err)
	}
	c.App.LogBufferSize = i

	adjustStep, _ := app.GetKey("adjust_step")
	f, err := adjustStep.Float64()
	if err != nil {
		panic(err)
	}
	c.App.AdjustStep = f

	// [canvas]
	canvas, _ := cfg.GetSection("canvas")
	plotWidth, _ := canvas.GetKey("plot_width")
	i, err = plotWidth.Int()
	if err != nil {
		panic(err)
	}
	c.Canvas.PlotWidth = i

	plotHeight, _ := canvas.GetKey("plot_height")
	i, err = plotHeight.Int()
	if err != nil {
		panic(err)
	}
	c.Canvas.PlotHeight = i

	margin, _ := canvas.GetKey("margin")
	f, err = margin.Float64()
	if err != nil {
		panic(err)
	}
	c.Canvas.Margin = f

	pointRadius, _ := canvas.GetKey("point_radius")
	f, err = pointRadius.Float64()
	if err != nil {
		panic(err)
	}
	c.Canvas.PointRadius = f

	humanLabels, _ := canvas.GetKey("human_labels")
	b, err := humanLabels.Bool()
	if err != nil {
		panic(err)
	}
	c.Canvas.HumanLabels = b

	// [device]
	device, _ := cfg.GetSection("device")
	preferred, _ := device.GetKey("preferred")
	c.Device.Preferred = preferred.String()

	lockLow, _ := device.GetKey("lock_low")
	b, err = lockLow.Bool()
	if err != nil {
		panic(err)
	}
	c.Device.LockLow = b

	return c
}

//go:embed accelctl-config/accelctl.config
//go:embed accelctl-config/presets/*
var templateConfig embed.FS

const configDir = "accelctl-config"

// createConfigDirectoryIfNeeded materializes the embedded template
// config tree next to the binary on first run. Existing files stay
// intact.
func createConfigDirectoryIfNeeded() error {
	cdir, err := os.OpenFile(configDir, os.O_RDONLY, 0)
	if err == nil {
		cdir.Close()
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot open config directory: %v", err)
	}
	log.Info("config not exist, generating tree...", logger.Info)

	err = fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := os.MkdirAll(path, 0o777); err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", path, err)
			}
			return nil
		}

		data, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o666); err != nil {
			return fmt.Errorf("cannot write data into \"%s\" file: %w", path, err)
		}
		log.Info(fmt.Sprintf("Created \"%s\" file", path), logger.Debug)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("config generation done", logger.Info)
	return nil
}

// loadUserPresets reads every yaml preset in the config tree. Broken
// presets are reported and skipped.
func loadUserPresets() map[string][]curve.Point {
	presets := map[string][]curve.Point{}

	dir := filepath.Join(configDir, "presets")
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Info(fmt.Sprintf("cannot read presets directory: %v", err), logger.Warning)
		return presets
	}

	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Info(fmt.Sprintf("cannot read preset \"%s\": %v", entry.Name(), err), logger.Warning)
			continue
		}
		presetName, points, err := curve.ParsePreset(data)
		if err != nil {
			log.Info(fmt.Sprintf("skipping preset \"%s\": %v", entry.Name(), err), logger.Warning)
			continue
		}
		presets[presetName] = points
	}
	return presets
}
