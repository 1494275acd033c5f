package portal

import (
	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the portal feature around an existing service.
func NewFeature(service *Service, sessions *session.Manager) (*Feature, error) {
	views, err := LoadViews()
	if err != nil {
		return nil, err
	}
	return &Feature{service: service, handler: NewHandler(service, sessions, views)}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "portal"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
