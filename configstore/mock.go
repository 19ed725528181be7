package configstore

import (
	"github.com/stretchr/testify/mock"
)

// MockStore mocks the Store interface for fault-injection tests.
type MockStore struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockStore) Get(path, name string) (string, error) {
	args := m.Called(path, name)
	return args.String(0), args.Error(1)
}

// Set mocks the Set method
func (m *MockStore) Set(path, name, value string) error {
	args := m.Called(path, name, value)
	return args.Error(0)
}

// List mocks the List method
func (m *MockStore) List(path string) ([]string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
