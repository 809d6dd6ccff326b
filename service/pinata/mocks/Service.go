package mocks

import (
	io "io"

	mock "github.com/stretchr/testify/mock"

	ctx "github.com/x-xyz/launchpad/base/ctx"
	pinata "github.com/x-xyz/launchpad/service/pinata"
)

// Service is a mock type for the pinata.Service type. Options are not recorded.
type Service struct {
	mock.Mock
}

// Pin provides a mock function with given fields: c, file, filename
func (_m *Service) Pin(c ctx.Ctx, file io.Reader, filename string, _ ...pinata.Options) (string, error) {
	ret := _m.Called(c, file, filename)
	return ret.String(0), ret.Error(1)
}

// PinJson provides a mock function with given fields: c, value
func (_m *Service) PinJson(c ctx.Ctx, value interface{}, _ ...pinata.Options) (string, error) {
	ret := _m.Called(c, value)
	return ret.String(0), ret.Error(1)
}
