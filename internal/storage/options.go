package storage

import (
	"github.com/mcoot/golfhandicap/internal/dependencies/clock"
	"github.com/mcoot/golfhandicap/internal/dependencies/idgen"
)

// Options carries the dependencies shared by every Storage implementation
type Options struct {
	Clock clock.Clock
	IDs   idgen.Generator
}

// Option configures a Storage implementation
type Option func(*Options)

// WithClock sets the clock used for CreatedAt/UpdatedAt timestamps
func WithClock(c clock.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

// WithIDGenerator sets the generator used for new player and score IDs
func WithIDGenerator(g idgen.Generator) Option {
	return func(o *Options) {
		o.IDs = g
	}
}

// ApplyOptions resolves opts on top of the defaults
func ApplyOptions(opts ...Option) Options {
	o := Options{
		Clock: clock.New(),
		IDs:   idgen.New(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
