package mocks

import (
	"context"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of the sensors.Source interface
type Source struct {
	mock.Mock
}

func (m *Source) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Source) Fetch(ctx context.Context) (models.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Record), args.Error(1)
}
