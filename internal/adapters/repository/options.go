package repository

import (
	"github.com/okian/traineval/pkg/logger"
)

// DefaultNamespace prefixes every key written by the repository.
const DefaultNamespace = "traineval"

// Option applies a configuration option to the Repository.
type Option func(*Repository)

// WithNamespace sets the key namespace.
func WithNamespace(ns string) Option {
	return func(r *Repository) {
		if ns != "" {
			r.namespace = ns
		}
	}
}

// WithLegacyKey overrides the key of the combined legacy record.
func WithLegacyKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.legacyKey = key
		}
	}
}

// WithLogger sets the repository logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMaxDays bounds the day count of imported legacy records.
func WithMaxDays(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxDays = n
		}
	}
}
