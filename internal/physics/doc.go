// Package physics models the photoelectric experiment.
//
// A [Session] owns the metals registry, the live [Photon] and [Electron]
// sets and the [Emitter] countdown. Each call to [Session.Step] emits at
// most one photon, moves every particle once, absorbs photons that reach
// the emitting plate and removes electrons that reach the collector.
//
// A photon carries the kinetic energy h*c/lambda - W it would give a
// liberated electron. On absorption it frees an electron only when that
// energy exceeds the energy removed by the stopping voltage:
//
//	KE - e*V > 0
//
// The closed-form helpers ([PhotonEnergy], [ThresholdWavelength],
// [StoppingPotential], [Calculate]) share the same constants.
//
// Metrics implementing [Metric] can be attached with [Session.AddMetric];
// they observe the [StepReport] of every tick.
package physics
