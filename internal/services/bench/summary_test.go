package bench

import (
	"testing"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	report := Summarize("mixed", []duration.Components{
		duration.New(1, 0),
		duration.New(2, 0),
		duration.New(0, 500_000_000),
	})

	assert.Equal(t, 3, report.Runs)
	assert.Equal(t, duration.New(0, 500_000_000), report.Min)
	assert.Equal(t, duration.New(2, 0), report.Max)
	assert.Equal(t, duration.New(3, 500_000_000), report.Total)
	assert.Equal(t, duration.New(1, 166_666_666), report.Mean)
}

func TestSummarize_NanoCarry(t *testing.T) {
	report := Summarize("carry", []duration.Components{
		duration.New(0, 999_999_999),
		duration.New(0, 999_999_999),
	})

	assert.Equal(t, duration.New(1, 999_999_998), report.Total)
	assert.Equal(t, duration.New(0, 999_999_999), report.Mean)
}

func TestSummarize_HugeSeconds(t *testing.T) {
	report := Summarize("huge", []duration.Components{
		duration.New(1_000_000_000_000, 1),
		duration.New(1_000_000_000_001, 1),
	})

	assert.Equal(t, duration.New(2_000_000_000_001, 2), report.Total)
	assert.Equal(t, duration.New(1_000_000_000_000, 500_000_001), report.Mean)
}

func TestSummarize_Empty(t *testing.T) {
	report := Summarize("none", nil)
	assert.Zero(t, report.Runs)
	assert.Equal(t, duration.Elapsed{}, report.Mean)
}

func TestPrinter(t *testing.T) {
	d := duration.New(0, 12_345)

	assert.Equal(t, "12.345µs", DefaultPrinter().Sprint(d))
	assert.Equal(t, "12.345us", Printer{ASCII: true, Precision: 3}.Sprint(d))
	assert.Equal(t, "12.3 microseconds", Printer{LongUnits: true, Precision: 1}.Sprint(d))
	assert.Equal(t, "12.345000µs", Printer{Precision: 6}.Sprint(d))
}
