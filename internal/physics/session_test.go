package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/photosim/internal/physics"
)

func newSession() *physics.Session {
	metals, err := physics.NewMetals(physics.DefaultMetals()...)
	Expect(err).NotTo(HaveOccurred())
	s, err := physics.NewSession(physics.DefaultSessionConfig(), metals)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func run(s *physics.Session, p physics.Params, n int) []physics.StepReport {
	reports := make([]physics.StepReport, 0, n)
	for i := 0; i < n; i++ {
		r, err := s.Step(p)
		Expect(err).NotTo(HaveOccurred())
		reports = append(reports, r)
	}
	return reports
}

var _ = Describe("Session", func() {
	var s *physics.Session

	BeforeEach(func() {
		s = newSession()
	})

	It("starts on the first registered metal", func() {
		Expect(s.Current().Name).To(Equal("Sodium"))
		Expect(s.Photons()).To(BeEmpty())
		Expect(s.AverageSpeed()).To(BeZero())
	})

	Context("at 50% intensity and 500nm", func() {
		params := physics.Params{Wavelength: 500, Intensity: 50}

		It("emits once per countdown period with the photoelectric energy", func() {
			const n = 90
			reports := run(s, params, n)

			emitted := 0
			want := physics.PhotonEnergy(500e-9) - s.Current().WorkFunction
			for _, r := range reports {
				if r.Emitted {
					emitted++
					Expect(r.EmittedKE).To(BeNumerically("~", want, 1e-30))
				}
			}
			period := physics.Period(params.Intensity) + 1
			Expect(emitted).To(BeNumerically("~", n/period, 1))
		})

		It("frees electrons that eventually reach the collector", func() {
			reports := run(s, params, 400)

			var absorbed, liberated, collected int
			for _, r := range reports {
				absorbed += r.Absorbed
				liberated += r.Liberated
				collected += r.Collected
			}
			Expect(absorbed).To(BeNumerically(">", 0))
			Expect(liberated).To(Equal(absorbed))
			Expect(collected).To(BeNumerically(">", 0))
			Expect(collected).To(BeNumerically("<=", liberated))
		})
	})

	It("frees nothing below the threshold frequency", func() {
		Expect(s.SetMetal("Copper")).To(Succeed())
		reports := run(s, physics.Params{Wavelength: 500, Intensity: 100}, 300)

		absorbed := 0
		for _, r := range reports {
			absorbed += r.Absorbed
			Expect(r.Liberated).To(BeZero())
			Expect(r.AverageSpeed).To(BeZero())
		}
		Expect(absorbed).To(BeNumerically(">", 0))
		Expect(s.Electrons()).To(BeEmpty())
	})

	It("lets a large stopping voltage block every electron", func() {
		reports := run(s, physics.Params{Wavelength: 400, Intensity: 100, StopVoltage: 3}, 300)
		for _, r := range reports {
			Expect(r.Liberated).To(BeZero())
		}
	})

	It("does not emit with zero intensity", func() {
		reports := run(s, physics.Params{Wavelength: 400}, 50)
		for _, r := range reports {
			Expect(r.Emitted).To(BeFalse())
		}
		Expect(s.Countdown()).To(BeZero())
	})

	It("clears particles and the countdown on reset", func() {
		run(s, physics.Params{Wavelength: 400, Intensity: 30}, 100)
		Expect(s.Photons()).NotTo(BeEmpty())

		s.Reset()
		Expect(s.Photons()).To(BeEmpty())
		Expect(s.Electrons()).To(BeEmpty())
		Expect(s.Countdown()).To(BeZero())
		Expect(s.Ticks()).To(BeZero())
		Expect(s.Current().Name).To(Equal("Sodium"))
	})

	It("rejects unknown metals and invalid parameters", func() {
		Expect(s.SetMetal("Unobtainium")).To(MatchError(physics.ErrUnknownMetal))
		_, err := s.Step(physics.Params{Wavelength: -1, Intensity: 10})
		Expect(err).To(MatchError(physics.ErrInvalidParams))
	})

	It("feeds every report to attached metrics", func() {
		m := &countingMetric{}
		s.AddMetric(m)
		run(s, physics.Params{Wavelength: 400, Intensity: 100}, 12)
		Expect(m.n).To(Equal(12))
		Expect(s.Metrics()).To(HaveKeyWithValue("ticks", 12.0))

		s.Reset()
		Expect(m.n).To(BeZero())
	})
})

type countingMetric struct{ n int }

func (c *countingMetric) Name() string               { return "ticks" }
func (c *countingMetric) Observe(physics.StepReport) { c.n++ }
func (c *countingMetric) Value() float64             { return float64(c.n) }
func (c *countingMetric) Reset()                     { c.n = 0 }
