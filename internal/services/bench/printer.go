package bench

import (
	"fmt"

	"github.com/dariasmyr/stopwatch/duration"
)

// Printer renders durations with the configured unit style and precision.
type Printer struct {
	ASCII     bool
	LongUnits bool
	Precision int
}

func DefaultPrinter() Printer {
	return Printer{Precision: duration.DefaultPrecision}
}

func (p Printer) Sprint(c duration.Components) string {
	f := duration.Format(c)
	if p.ASCII {
		f = f.ASCII()
	}
	if p.LongUnits {
		return fmt.Sprintf("%+.*v", p.Precision, f)
	}
	return fmt.Sprintf("%.*v", p.Precision, f)
}
