package mocks

import (
	"iter"

	"github.com/brettbedarf/nsfs"
	"github.com/stretchr/testify/mock"
)

// MockNamespace implements nsfs.Namespace for testing across packages
type MockNamespace struct {
	mock.Mock
}

func (m *MockNamespace) CreateDirectory(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockNamespace) CreateFile(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockNamespace) Resolve(path string) (nsfs.NodeView, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nsfs.NodeView{}, args.Error(1)
	}
	return args.Get(0).(nsfs.NodeView), args.Error(1)
}

// ListChildren accepts either an iter.Seq or a plain []nsfs.Entry as the first return value
func (m *MockNamespace) ListChildren(path string) (iter.Seq[nsfs.Entry], error) {
	args := m.Called(path)

	switch v := args.Get(0).(type) {
	case iter.Seq[nsfs.Entry]:
		return v, args.Error(1)
	case []nsfs.Entry:
		return func(yield func(nsfs.Entry) bool) {
			for _, e := range v {
				if !yield(e) {
					return
				}
			}
		}, args.Error(1)
	default:
		return nil, args.Error(1)
	}
}

var _ nsfs.Namespace = (*MockNamespace)(nil)
