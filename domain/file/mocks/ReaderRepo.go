package mocks

import (
	mock "github.com/stretchr/testify/mock"

	ctx "github.com/x-xyz/launchpad/base/ctx"
)

// ReaderRepo is a mock type for the file.ReaderRepo type
type ReaderRepo struct {
	mock.Mock
}

// Get provides a mock function with given fields: c, uri
func (_m *ReaderRepo) Get(c ctx.Ctx, uri string) ([]byte, error) {
	ret := _m.Called(c, uri)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string) []byte); ok {
		r0 = rf(c, uri)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
