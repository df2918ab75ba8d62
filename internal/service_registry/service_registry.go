package service_registry

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service is a background component started before streaming and stopped after it.
type Service interface {
	Start() error
	Stop() error
}

type entry struct {
	svc      Service
	optional bool
	started  bool
}

// ServiceRegistry manages the lifecycle of the background services.
type ServiceRegistry struct {
	services    map[string]*entry // Stores registered services
	serviceKeys []string          // Maintains order of service registration
	Logger      zerolog.Logger
}

// NewServiceRegistry initializes an empty service registry.
func NewServiceRegistry(logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[string]*entry),
		Logger:   logger,
	}
}

// RegisterService adds a service whose start failure aborts startup.
func (sr *ServiceRegistry) RegisterService(name string, svc Service) {
	sr.register(name, svc, false)
}

// RegisterOptionalService adds a service that is skipped when it fails to start.
func (sr *ServiceRegistry) RegisterOptionalService(name string, svc Service) {
	sr.register(name, svc, true)
}

func (sr *ServiceRegistry) register(name string, svc Service, optional bool) {
	if _, exists := sr.services[name]; exists {
		sr.Logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	sr.services[name] = &entry{svc: svc, optional: optional}
	sr.serviceKeys = append(sr.serviceKeys, name)
	sr.Logger.Debug().Msgf("Registered service: %s", name)
}

// StartServices starts all registered services in order.
// If a required service fails to start, it stops already started services.
func (sr *ServiceRegistry) StartServices() error {
	for _, name := range sr.serviceKeys {
		e := sr.services[name]
		sr.Logger.Info().Msgf("Starting service: %s", name)
		if err := e.svc.Start(); err != nil {
			if e.optional {
				sr.Logger.Warn().Err(err).Msgf("Service %s disabled", name)
				continue
			}
			sr.Logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			// Stop already started services before returning
			sr.Logger.Warn().Msg("Stopping already started services due to startup failure...")
			_ = sr.StopServices()
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		e.started = true
	}
	return nil
}

// Started reports whether the named service is running.
func (sr *ServiceRegistry) Started(name string) bool {
	e, ok := sr.services[name]
	return ok && e.started
}

// StopServices stops the started services in reverse order.
func (sr *ServiceRegistry) StopServices() error {
	var stopErrors []error
	for i := len(sr.serviceKeys) - 1; i >= 0; i-- {
		name := sr.serviceKeys[i]
		e := sr.services[name]
		if !e.started {
			continue
		}
		e.started = false
		if err := e.svc.Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			sr.Logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}
