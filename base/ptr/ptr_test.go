package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}

func (s *pointerSuite) TestPointer() {
	now := time.Unix(100, 0)
	s.Equal("abc123", *String(`abc123`))
	s.Equal(123, *Int(123))
	s.Equal(int64(891011), *Int64(891011))
	s.Equal(true, *Bool(true))
	s.Equal(now, *Time(now))
	s.Equal(uint64(7), *Of(uint64(7)))
}

func (s *pointerSuite) TestDeref() {
	s.Equal(5, Deref(nil, 5))
	s.Equal(3, Deref(Int(3), 5))
}
