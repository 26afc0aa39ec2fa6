package physics

import "math"

const (
	Planck           = 6.62607004e-34 // J s
	SpeedOfLight     = 3e8            // m/s
	ElementaryCharge = 1.6e-19        // C
	ElectronMass     = 9.11e-31       // kg

	Nano = 1e-9
)

// PhotonEnergy returns h*c/lambda in joules for a wavelength in metres.
func PhotonEnergy(lambda float64) float64 {
	return Planck * Frequency(lambda)
}

func Frequency(lambda float64) float64 {
	return SpeedOfLight / lambda
}

// ThresholdWavelength is the longest wavelength that can liberate an
// electron from a surface with work function w.
func ThresholdWavelength(w float64) float64 {
	return Planck * SpeedOfLight / w
}

func ThresholdFrequency(w float64) float64 {
	return w / Planck
}

// MaxKineticEnergy is the photon energy left after escaping the surface.
// It is negative below threshold.
func MaxKineticEnergy(lambda, w float64) float64 {
	return PhotonEnergy(lambda) - w
}

// StoppingPotential is the retarding voltage that stops the fastest
// electrons, or 0 below threshold.
func StoppingPotential(lambda, w float64) float64 {
	ke := MaxKineticEnergy(lambda, w)
	if ke <= 0 {
		return 0
	}
	return ke / ElementaryCharge
}

// WorkFunctionFromStop recovers the work function from a measured
// stopping potential v0 at wavelength lambda.
func WorkFunctionFromStop(lambda, v0 float64) float64 {
	return PhotonEnergy(lambda) - ElementaryCharge*v0
}

// ElectronSpeed is the non-relativistic speed in m/s for kinetic energy
// ke, or 0 when ke is not positive.
func ElectronSpeed(ke float64) float64 {
	if ke <= 0 {
		return 0
	}
	return math.Sqrt(2 * ke / ElectronMass)
}

func JoulesToEV(j float64) float64 { return j / ElementaryCharge }
func EVToJoules(ev float64) float64 { return ev * ElementaryCharge }

// Calculation is the closed-form photoelectric result for one wavelength
// and metal.
type Calculation struct {
	Wavelength          float64
	WorkFunction        float64
	Frequency           float64
	PhotonEnergy        float64
	ThresholdWavelength float64
	ThresholdFrequency  float64
	MaxKineticEnergy    float64
	StoppingPotential   float64
	MaxSpeed            float64
	Emits               bool
}

func Calculate(lambda, w float64) Calculation {
	ke := MaxKineticEnergy(lambda, w)
	return Calculation{
		Wavelength:          lambda,
		WorkFunction:        w,
		Frequency:           Frequency(lambda),
		PhotonEnergy:        PhotonEnergy(lambda),
		ThresholdWavelength: ThresholdWavelength(w),
		ThresholdFrequency:  ThresholdFrequency(w),
		MaxKineticEnergy:    ke,
		StoppingPotential:   StoppingPotential(lambda, w),
		MaxSpeed:            ElectronSpeed(ke),
		Emits:               ke > 0,
	}
}
