// Package analysis inspects simulation traces and parameter sweeps.
//
//   - [Series]: one named counter or gauge from a trace
//   - [PowerSpectrum], [DominantPeriod]: FFT of a series (go-dsp)
//   - [SweepStopVoltage], [SweepWavelength]: repeated runs across a
//     parameter, giving the photocurrent curve and the threshold
//
// # Emission rhythm
//
// The lamp emits on a fixed countdown, so the emitted series of a run
// has a sharp spectral line at the emission period:
//
//	p := analysis.DominantPeriod(analysis.Series(trace, "emitted"), 30)
//	// p.Ticks == period + 1
package analysis
