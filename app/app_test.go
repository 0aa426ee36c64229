//go:build !tinygo

package app

import (
	"testing"

	"lumen/hal"
	"lumen/lumenos/display"
)

func TestBootAndStep(t *testing.T) {
	step := NewWithConfig(hal.New(), Config{Demo: true})
	for i := 0; i < 3; i++ {
		if err := step(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

type fixedTicks struct{ ch chan uint64 }

func (t fixedTicks) Ticks() <-chan uint64 { return t.ch }

type tickHAL struct {
	hal.HAL
	clock fixedTicks
}

func (h tickHAL) Time() hal.Time { return h.clock }

func TestDemoFollowsPlatformTicks(t *testing.T) {
	h := tickHAL{HAL: hal.New(), clock: fixedTicks{ch: make(chan uint64, 8)}}
	s := newSystem(h, Config{Demo: true})

	w, hh := s.disp.Layer(display.LayerMain).Size()
	cx, cy := w/2, hh/2

	// 16 platform ticks per phase step; phase 90 puts the cursor at the
	// bottom of its orbit, phase 270 at the top.
	h.clock.ch <- 16 * 90
	if err := s.step(); err != nil {
		t.Fatal(err)
	}
	x1, y1 := s.disp.CursorPosition()
	if x1 != cx || y1 != cy+140 {
		t.Fatalf("phase 90 cursor = (%d,%d), want (%d,%d)", x1, y1, cx, cy+140)
	}

	h.clock.ch <- 16 * 270
	if err := s.step(); err != nil {
		t.Fatal(err)
	}
	x2, y2 := s.disp.CursorPosition()
	if x2 != cx || y2 != cy-140 {
		t.Fatalf("phase 270 cursor = (%d,%d), want (%d,%d)", x2, y2, cx, cy-140)
	}
}

func TestBootWithoutDemo(t *testing.T) {
	s := newSystem(hal.New(), Config{})
	if err := s.step(); err != nil {
		t.Fatal(err)
	}
	if s.disp.Layer(display.LayerOverlay).Visible {
		t.Fatal("overlay should stay hidden without the demo scene")
	}
	if !s.disp.Layer(display.LayerUi).Visible {
		t.Fatal("boot console layer should be visible")
	}
	if s.disp.FrameCount() == 0 {
		t.Fatal("frame counter did not advance")
	}
}
