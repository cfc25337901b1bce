package service

import (
	"github.com/okian/traineval/internal/adapters/repository"
	"github.com/okian/traineval/internal/domain/registry"
	"github.com/okian/traineval/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRepository sets the persistence layer. Without it the service keeps
// state in memory only.
func WithRepository(repo *repository.Repository) Option {
	return func(s *Service) {
		if repo != nil {
			s.repo = repo
		}
	}
}

// WithMaxDays sets the upper bound for the training day count.
func WithMaxDays(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDays = n
		}
	}
}

// WithShareOrigin sets the origin used to build share links.
func WithShareOrigin(origin string) Option {
	return func(s *Service) {
		if origin != "" {
			s.shareOrigin = origin
		}
	}
}

// WithRegistryOptions forwards options to the participant registry.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(s *Service) {
		s.registryOpts = append(s.registryOpts, opts...)
	}
}
