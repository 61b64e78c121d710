package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/accelctl/accelctl/internal/pkg/logger"
	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"
)

const (
	ViewCurve   = "curve"
	ViewPoints  = "points"
	ViewDevices = "devices"
	ViewLogs    = "logs"
)

const (
	pointsViewWidth   = 36
	devicesViewHeight = 2
	logsViewHeight    = 9
)

func GetCli() (*gocui.Gui, error) {
	g, err := gocui.NewGui(gocui.Output256, true)
	if err != nil {
		return nil, err
	}
	g.Mouse = true

	g.SetManagerFunc(Layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return nil, err
	}

	return g, nil
}

func Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(ViewDevices, 0, 0, maxX-1, devicesViewHeight, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Devices]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewCurve, 0, devicesViewHeight, maxX-pointsViewWidth-1, maxY-logsViewHeight-1, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Curve]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewPoints, maxX-pointsViewWidth, devicesViewHeight, maxX-1, maxY-logsViewHeight-1, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Control Points]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewLogs, 0, maxY-logsViewHeight, maxX-1, maxY-1, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Logs]"
		v.Autoscroll = true
		v.Wrap = false
		v.Frame = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

type TimeNanosecond time.Time

func (j *TimeNanosecond) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*j = TimeNanosecond(time.Unix(0, v))
	return nil
}

func (j TimeNanosecond) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(j))
}

type Entry struct {
	Ts     TimeNanosecond `json:"ts"`
	Caller string         `json:"caller"`
	Msg    string         `json:"msg"`
	Level  int            `json:"level"`

	Device string `json:"device"`
}

func unpack(data []byte) (Entry, error) {
	var v Entry
	err := json.Unmarshal(data, &v)
	return v, err
}

func gray(v uint8) aurora.Color {
	if v > 23 {
		v = 23
	}
	return aurora.Color(232+v) << 16
}

func color(r, g, b uint8) aurora.Color {
	return aurora.Color(16+36*r+6*g+b) << 16
}

// returns random color for string, will return the same color for the same string
func colorForString(au aurora.Aurora, s string) aurora.Value {
	h := fnv.New32a()
	h.Write([]byte(s))
	sum := h.Sum32()

	r, g, b := uint8(sum)&0b00000111, uint8(sum>>8)&0b00000111, uint8(sum>>16)&0b00000111
	if r > 5 {
		r = 5
	}
	if g > 5 {
		g = 5
	}
	if b > 5 {
		b = 5
	}

	// avoid dark colors
	if r+g+b < 3 {
		r += 1
		g += 1
		b += 1
	}

	return au.Index(16+36*r+6*g+b, s)
}

func prepareString(msg Entry, au aurora.Aurora, logLevel int) string {
	if msg.Level > logLevel {
		return ""
	}

	var msgColor aurora.Color
	switch msg.Level {
	case logger.ErrorLvl:
		msgColor = color(5, 1, 1)
	case logger.WarningLvl:
		msgColor = color(5, 5, 1)
	case logger.InfoLvl:
		msgColor = gray(18)
	case logger.ActionLvl:
		msgColor = gray(16)
	case logger.DebugLvl:
		msgColor = gray(9)
	}

	tf := time.Time(msg.Ts).Format("15:04:05.000")
	timestamp := fmt.Sprintf("[%s]", au.Reset(tf).Colorize(color(1, 1, 5)).String())

	fields := ""
	if msg.Device != "" {
		fields += fmt.Sprintf(" [dev=%s]", colorForString(au, msg.Device).String())
	}
	if logLevel >= logger.DebugLvl && msg.Caller != "" {
		x := strings.Split(msg.Caller, ":")
		fields += fmt.Sprintf(" (%s:%s)", colorForString(au, x[0]).String(), x[1])
	}

	return fmt.Sprintf("%s %s%s", timestamp, au.Reset(msg.Msg).Colorize(msgColor).String(), fields)
}

// logView feeds encoded log entries into the log view, keeping at most
// bufferSize lines.
func logView(g *gocui.Gui, colors bool, logLevel, bufferSize int) {
	// the view shows up once the main loop ran the layout
	var view *gocui.View
	for {
		var err error
		view, err = g.View(ViewLogs)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	au := aurora.NewAurora(colors)
	var lines []string

	for data := range logger.Messages {
		msg, err := unpack(data)
		if err != nil {
			continue
		}
		m := prepareString(msg, au, logLevel)
		if m == "" {
			continue
		}

		lines = append(lines, m)
		if len(lines) > bufferSize {
			lines = lines[len(lines)-bufferSize:]
		}
		snapshot := strings.Join(lines, "\n")

		g.Update(func(g *gocui.Gui) error {
			view.Clear()
			fmt.Fprintln(view, snapshot)
			return nil
		})
	}
}
