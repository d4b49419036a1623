// Package duration combines an elapsed time's whole seconds and sub-second
// nanoseconds into fractional seconds, milliseconds and microseconds, and
// formats elapsed times for performance measurements.
//
// # Conversion
//
//	d := duration.New(4, 123_456_789)
//	d.FractionalSecs()   // 4.123456789
//	d.FractionalMillis() // 4123.456789
//	d.FractionalMicros() // 4123456.789
//
// Any type with Secs and SubsecNanos methods can be converted with the
// package level functions. A time.Duration is adapted with Std.
//
// # Formatting
//
//	start := time.Now()
//	doSomething()
//	fmt.Println("Needed", duration.Format(duration.Since(start)))
//
// Output: Needed 12.841µs
//
// The largest unit whose value is at least 1 is chosen and rendered with
// three decimals. Values below one microsecond, zero included, are shown
// in microseconds. The + flag switches to full unit names
// ("12.841 microseconds") and an explicit precision ("%.6v") overrides the
// three decimals.
package duration
