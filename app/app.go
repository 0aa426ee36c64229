// Package app wires the graphics stack together: boot record, PCI scan,
// adapter bring-up, compositor, boot console, and the demo scene.
package app

import (
	"fmt"

	"lumen/hal"
	"lumen/lumenos/console"
	"lumen/lumenos/display"
	"lumen/lumenos/gfx"
	"lumen/lumenos/gpu"
	"lumen/lumenos/pci"
	"lumen/lumenos/surface"
)

type Config struct {
	// Demo draws the animated scene on the Main and Overlay layers. With
	// Demo off only the background and the boot console render.
	Demo bool
}

type system struct {
	h   hal.HAL
	log hal.Logger
	cfg Config

	adapter *gpu.Adapter
	disp    *display.Display
	con     *console.Console

	ticks <-chan uint64
	tick  uint64
}

// New boots the stack with the default config and returns the per-frame
// step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{Demo: true})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run boots and drives the frame loop forever (baremetal entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{Demo: true})
}

func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			h.Halt()
		}
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	s := &system{h: h, log: h.Logger(), cfg: cfg, ticks: h.Time().Ticks()}

	rec := s.bootRecord()
	s.probeHardware(&rec)

	pipe, err := gpu.NewPipeline(h.Memory(), rec)
	if err != nil {
		s.fatal("gpu: " + err.Error())
	}
	s.disp = display.New(pipe)

	s.con = console.New(s.disp.Layer(display.LayerUi))
	s.disp.SetVisible(display.LayerUi, true)
	s.logLine("lumen: display " + modeString(s.adapter))

	gfx.GradientV(s.disp.Layer(display.LayerBackground), surface.DarkBG, surface.Black)
	s.disp.SetCursorVisible(true)

	s.disp.EndFrame()
	return s
}

// bootRecord decodes and validates the handoff record. There is no
// recovery from a bad record; without it nothing knows where the
// framebuffer lives.
func (s *system) bootRecord() hal.BootRecord {
	raw, err := s.h.BootRecord()
	if err != nil {
		s.fatal("boot: " + err.Error())
	}
	rec, err := hal.DecodeBootRecord(raw)
	if err == nil {
		err = rec.Validate()
	}
	if err != nil {
		s.fatal("boot: " + err.Error())
	}
	return rec
}

func (s *system) probeHardware(rec *hal.BootRecord) {
	bus := pci.NewBus(s.h.Ports())
	bus.Enumerate()
	for _, d := range bus.Devices() {
		s.log.WriteLineString(fmt.Sprintf("pci: %02x:%02x.%d %04x:%04x %s (%s)",
			d.Bus, d.Slot, d.Func, d.VendorID, d.DeviceID,
			pci.VendorName(d.VendorID), pci.ClassName(d.Class, d.Subclass)))
	}

	s.adapter = gpu.NewAdapter(s.h.Ports(), bus)
	s.adapter.Detect()
	s.log.WriteLineString("gpu: " + s.adapter.Kind.String())

	err := s.adapter.SetMode(int(rec.FBWidth), int(rec.FBHeight), int(rec.FBBpp))
	if err != nil {
		s.adapter.AdoptRecordGeometry(*rec)
		s.log.WriteLineString("gpu: mode fixed by firmware, " + modeString(s.adapter))
		return
	}
	// A fresh mode set defines its own pitch; keep the record in sync so
	// the pipeline maps the aperture the way the device now scans it.
	rec.FBPitch = uint16(s.adapter.Pitch)
	if s.adapter.FBBase != 0 {
		rec.FBAddr = uint32(s.adapter.FBBase)
	}
	s.log.WriteLineString("gpu: mode set, " + modeString(s.adapter))
}

func (s *system) step() error {
	s.disp.BeginFrame()

	if s.cfg.Demo {
		s.drawScene(s.phase())
	}

	s.disp.EndFrame()
	return nil
}

// phase drains the platform tick stream and derives the animation phase
// from it. A platform without a tick source leaves the channel nil, and
// the frame counter stands in so the scene still moves.
func (s *system) phase() int {
drain:
	for {
		select {
		case v := <-s.ticks:
			s.tick = v
		default:
			break drain
		}
	}
	if s.tick == 0 {
		return int(s.disp.Ticks())
	}
	return int(s.tick / 16)
}

// drawScene exercises most of the primitive library; it doubles as a
// visual smoke test on real hardware.
func (s *system) drawScene(t int) {
	main := s.disp.Layer(display.LayerMain)
	w, h := main.Size()
	cx, cy := w/2, h/2

	main.Clear()

	// Orbiting star, hue cycling with the frame tick.
	angle := (t * 3) % 360
	sx := cx + 120*gfx.Cos(angle)/256
	sy := cy + 80*gfx.Sin(angle)/256
	gfx.FillStar(main, sx, sy, 40, 16, 5, surface.FromHSV(angle, 255, 255))

	gfx.Ring(main, cx, cy, 150, 144, surface.NeonPurple)
	gfx.Circle(main, cx, cy, 160, surface.DarkGray)

	gfx.BezierCubic(main,
		40, h-40,
		cx-100, cy+(gfx.Sin(angle*2)*60)/256,
		cx+100, cy-(gfx.Sin(angle*2)*60)/256,
		w-40, h-40,
		surface.NeonGreen)

	gfx.RectRounded(main, 24, 24, 180, 60, 10, surface.NeonBlue)

	// Overlay banner pulsing between faint and half-visible.
	overlay := s.disp.Layer(display.LayerOverlay)
	if !overlay.Visible {
		overlay.FillRect(0, h-48, w, 48, surface.RGBA(255, 16, 240, 255))
		s.disp.SetVisible(display.LayerOverlay, true)
	}
	pulse := gfx.Sin((t * 4) % 360)
	if pulse < 0 {
		pulse = -pulse
	}
	s.disp.SetAlpha(display.LayerOverlay, uint8(32+pulse*96/256))

	// Cursor drifts in a slow circle.
	s.disp.SetCursorPosition(cx+200*gfx.Cos(t%360)/256, cy+140*gfx.Sin(t%360)/256)
}

func (s *system) logLine(line string) {
	s.log.WriteLineString(line)
	if s.con != nil {
		s.con.WriteLineString(line)
	}
}

// fatal logs the failure and halts. When a display already exists the
// message also lands on the screen, otherwise the log line is all there is.
func (s *system) fatal(msg string) {
	s.log.WriteLineString(msg)
	if s.disp != nil {
		s.fatalScreen(msg)
	}
	s.h.Halt()
}

func modeString(a *gpu.Adapter) string {
	return fmt.Sprintf("%dx%dx%d pitch %d", a.Width, a.Height, a.BPP, a.Pitch)
}
