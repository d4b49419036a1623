package bench

import "github.com/dariasmyr/stopwatch/duration"

const nanosPerSec = 1_000_000_000

// Summarize computes min, max, mean and total of timings without going
// through a single nanosecond count, so second counts beyond the
// time.Duration range stay exact.
func Summarize(label string, timings []duration.Components) Report {
	report := Report{Label: label, Runs: len(timings)}
	if len(timings) == 0 {
		return report
	}

	var totalSecs, totalNanos uint64
	for i, t := range timings {
		e := duration.FromComponents(t)
		if i == 0 || less(e, report.Min) {
			report.Min = e
		}
		if i == 0 || less(report.Max, e) {
			report.Max = e
		}
		totalSecs += e.Seconds
		totalNanos += uint64(e.Nanos)
	}

	report.Total = normalize(totalSecs, totalNanos)

	n := uint64(len(timings))
	total := report.Total
	meanSecs := total.Seconds / n
	meanNanos := (total.Seconds%n*nanosPerSec + uint64(total.Nanos)) / n
	report.Mean = normalize(meanSecs, meanNanos)

	return report
}

func less(a, b duration.Elapsed) bool {
	if a.Seconds != b.Seconds {
		return a.Seconds < b.Seconds
	}
	return a.Nanos < b.Nanos
}

func normalize(secs, nanos uint64) duration.Elapsed {
	return duration.New(secs+nanos/nanosPerSec, uint32(nanos%nanosPerSec))
}
