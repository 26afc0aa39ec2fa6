package config

import (
	"github.com/san-kum/photosim/internal/metrics"
	"github.com/san-kum/photosim/internal/physics"
)

// Factory returns a session builder for headless runs: the configured
// metals plus custom, metal selected (empty keeps the first), and the
// standard metrics attached.
func (c *Config) Factory(metal string, custom []physics.Metal) func(seed int64) (*physics.Session, error) {
	return func(seed int64) (*physics.Session, error) {
		builtin, err := c.Metals()
		if err != nil {
			return nil, err
		}
		reg, err := physics.NewMetals(builtin...)
		if err != nil {
			return nil, err
		}
		for _, m := range custom {
			if err := reg.Add(m); err != nil {
				return nil, err
			}
		}

		sc := c.SessionConfig()
		sc.Seed = seed
		s, err := physics.NewSession(sc, reg)
		if err != nil {
			return nil, err
		}
		if metal != "" {
			if err := s.SetMetal(metal); err != nil {
				return nil, err
			}
		}
		for _, m := range metrics.Standard(c.TickRate) {
			s.AddMetric(m)
		}
		return s, nil
	}
}
