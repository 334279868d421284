package dashboard

import (
	"time"

	"github.com/rpggio/coachboard/internal/domain/filter"
)

// Config tunes the service.
type Config struct {
	// WeeksBack is how many Sundays of history a refresh loads.
	WeeksBack int
	// ExcludedLevel overrides the label dropped by the one-month-challenge stage.
	ExcludedLevel string
	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		WeeksBack:     8,
		ExcludedLevel: filter.DefaultExcludedLevel,
		Now:           time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WeeksBack <= 0 {
		c.WeeksBack = d.WeeksBack
	}
	if c.ExcludedLevel == "" {
		c.ExcludedLevel = d.ExcludedLevel
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	return c
}
