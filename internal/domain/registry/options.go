package registry

import "github.com/google/uuid"

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerator replaces the UUIDv4 generator used for new participants.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

func defaultID() string {
	return uuid.NewString()
}
