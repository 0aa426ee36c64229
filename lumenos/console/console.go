// Package console renders boot log text into a compositor layer through a
// tinyterm terminal, so progress is visible on screen before anything
// else is running.
package console

import (
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"lumen/lumenos/display"
)

// Console is a text terminal over one compositor layer. It satisfies the
// line-logger contract, so it can be chained behind the platform logger.
type Console struct {
	term *tinyterm.Terminal
}

// New builds a terminal writing into the given layer. The layer is not
// made visible here; the caller decides when the console shows.
func New(l *display.Layer) *Console {
	t := tinyterm.NewTerminal(&layerDisplayer{layer: l})
	t.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        10,
		FontOffset:        8,
		UseSoftwareScroll: true,
	})
	return &Console{term: t}
}

// Write feeds raw bytes to the terminal, ANSI sequences included.
func (c *Console) Write(b []byte) (int, error) {
	return c.term.Write(b)
}

// WriteLineString prints one log line.
func (c *Console) WriteLineString(s string) {
	_, _ = c.term.Write([]byte(s))
	_, _ = c.term.Write([]byte("\r\n"))
}

// WriteLineBytes prints one log line.
func (c *Console) WriteLineBytes(b []byte) {
	_, _ = c.term.Write(b)
	_, _ = c.term.Write([]byte("\r\n"))
}
