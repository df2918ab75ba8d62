package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// Token is a mock implementation of the mqtt.Token interface
type Token struct {
	mock.Mock
}

func (m *Token) Error() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Token) Wait() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Token) Done() <-chan struct{} {
	args := m.Called()
	return args.Get(0).(<-chan struct{})
}

// WaitTimeout reports whether the publish completed within timeout.
func (m *Token) WaitTimeout(timeout time.Duration) bool {
	args := m.Called(timeout)
	return args.Bool(0)
}
