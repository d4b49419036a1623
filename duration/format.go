package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals Formatted renders unless the
// format verb asks for another.
const DefaultPrecision = 3

// Unit is one of the scales a Formatted value can be rendered in.
type Unit uint8

const (
	Seconds Unit = iota
	Millis
	Micros
)

// Suffix returns the abbreviated unit, e.g. "ms".
func (u Unit) Suffix() string {
	switch u {
	case Seconds:
		return "s"
	case Millis:
		return "ms"
	case Micros:
		return "µs"
	default:
		return "?"
	}
}

// Name returns the full unit name, e.g. "milliseconds".
func (u Unit) Name() string {
	switch u {
	case Seconds:
		return "seconds"
	case Millis:
		return "milliseconds"
	case Micros:
		return "microseconds"
	default:
		return "unknown"
	}
}

func (u Unit) String() string {
	return u.Name()
}

// Formatted renders a duration in the largest unit whose value is at least
// one. It is meant for printing performance measurements:
//
//	fmt.Printf("Needed %v\n", duration.Format(d))   // Needed 1.234ms
//	fmt.Printf("Needed %+v\n", duration.Format(d))  // Needed 1.234 milliseconds
//	fmt.Printf("Needed %.1v\n", duration.Format(d)) // Needed 1.2ms
//
// The text is computed on every call; a Formatted holds no state besides
// the wrapped duration.
type Formatted struct {
	src   Components
	ascii bool
}

// Format wraps c for display.
func Format(c Components) Formatted {
	return Formatted{src: c}
}

// ASCII returns a copy that writes "us" instead of "µs".
func (f Formatted) ASCII() Formatted {
	f.ascii = true
	return f
}

// Unit returns the unit the duration is rendered in.
func (f Formatted) Unit() Unit {
	u, _ := f.pick()
	return u
}

// Value returns the fractional duration in Unit.
func (f Formatted) Value() float64 {
	_, v := f.pick()
	return v
}

func (f Formatted) pick() (Unit, float64) {
	secs := FractionalSecs(f.src)
	millis := FractionalMillis(f.src)
	micros := FractionalMicros(f.src)

	if secs >= 1.0 {
		return Seconds, secs
	}
	if millis >= 1.0 {
		return Millis, millis
	}
	// Sub-microsecond values, zero included, stay in microseconds.
	return Micros, micros
}

func (f Formatted) render(prec int, long bool) string {
	unit, value := f.pick()
	num := strconv.FormatFloat(value, 'f', prec, 64)

	if long {
		return num + " " + unit.Name()
	}
	if unit == Micros && f.ascii {
		return num + "us"
	}
	return num + unit.Suffix()
}

// String renders the duration with three decimals and an abbreviated unit.
func (f Formatted) String() string {
	return f.render(DefaultPrecision, false)
}

// MarshalText lets encoders and slog handlers print the rendered form.
func (f Formatted) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Format implements fmt.Formatter. The v, s and q verbs are supported;
// the + flag selects full unit names, precision overrides the decimals and
// width pads the result (left aligned with the - flag).
func (f Formatted) Format(s fmt.State, verb rune) {
	prec, ok := s.Precision()
	if !ok {
		prec = DefaultPrecision
	}
	text := f.render(prec, s.Flag('+'))

	switch verb {
	case 'v', 's':
	case 'q':
		text = strconv.Quote(text)
	default:
		fmt.Fprintf(s, "%%!%c(duration.Formatted=%s)", verb, text)
		return
	}

	if width, ok := s.Width(); ok {
		if pad := width - len([]rune(text)); pad > 0 {
			if s.Flag('-') {
				text += strings.Repeat(" ", pad)
			} else {
				text = strings.Repeat(" ", pad) + text
			}
		}
	}
	_, _ = s.Write([]byte(text))
}
