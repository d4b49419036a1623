package duration

import "time"

const (
	nanosPerSec   = 1_000_000_000.0
	nanosPerMilli = 1_000_000.0
	nanosPerMicro = 1_000.0
)

// Components is an elapsed time split into whole seconds and the
// sub-second remainder in nanoseconds. SubsecNanos must be below 1e9.
type Components interface {
	Secs() uint64
	SubsecNanos() uint32
}

// Float is implemented by durations that can report themselves as
// fractional seconds, milliseconds and microseconds.
type Float interface {
	// FractionalSecs returns the duration in seconds.
	FractionalSecs() float64
	// FractionalMillis returns the duration in milliseconds.
	FractionalMillis() float64
	// FractionalMicros returns the duration in microseconds.
	FractionalMicros() float64
}

// FractionalSecs returns secs + nanos/1e9.
func FractionalSecs(c Components) float64 {
	return float64(c.Secs()) + float64(c.SubsecNanos())/nanosPerSec
}

// FractionalMillis returns secs*1e3 + nanos/1e6.
func FractionalMillis(c Components) float64 {
	return float64(c.Secs())*1_000.0 + float64(c.SubsecNanos())/nanosPerMilli
}

// FractionalMicros returns secs*1e6 + nanos/1e3.
func FractionalMicros(c Components) float64 {
	return float64(c.Secs())*1_000_000.0 + float64(c.SubsecNanos())/nanosPerMicro
}

// Std adapts a non-negative time.Duration.
type Std time.Duration

// Since returns the time elapsed since start.
func Since(start time.Time) Std {
	return Std(time.Since(start))
}

func (d Std) Secs() uint64 {
	return uint64(time.Duration(d) / time.Second)
}

func (d Std) SubsecNanos() uint32 {
	return uint32(time.Duration(d) % time.Second)
}

func (d Std) FractionalSecs() float64   { return FractionalSecs(d) }
func (d Std) FractionalMillis() float64 { return FractionalMillis(d) }
func (d Std) FractionalMicros() float64 { return FractionalMicros(d) }

// String renders d the way Format does.
func (d Std) String() string {
	return Format(d).String()
}

// Elapsed is a duration held as its two components. Unlike Std it is not
// bounded by the int64 nanosecond range of time.Duration.
type Elapsed struct {
	Seconds uint64 `json:"seconds" yaml:"seconds"`
	Nanos   uint32 `json:"nanos" yaml:"nanos"`
}

// New returns an Elapsed. nanos is not normalised; callers keep it below 1e9.
func New(secs uint64, nanos uint32) Elapsed {
	return Elapsed{Seconds: secs, Nanos: nanos}
}

// FromComponents copies any Components into an Elapsed.
func FromComponents(c Components) Elapsed {
	return Elapsed{Seconds: c.Secs(), Nanos: c.SubsecNanos()}
}

func (e Elapsed) Secs() uint64        { return e.Seconds }
func (e Elapsed) SubsecNanos() uint32 { return e.Nanos }

func (e Elapsed) FractionalSecs() float64   { return FractionalSecs(e) }
func (e Elapsed) FractionalMillis() float64 { return FractionalMillis(e) }
func (e Elapsed) FractionalMicros() float64 { return FractionalMicros(e) }

func (e Elapsed) String() string {
	return Format(e).String()
}

var (
	_ Float = Std(0)
	_ Float = Elapsed{}
)
