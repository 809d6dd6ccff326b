package locker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain"
)

type localLockerSuite struct {
	suite.Suite
	l Locker
}

func TestLocalLockerSuite(t *testing.T) {
	suite.Run(t, new(localLockerSuite))
}

func (s *localLockerSuite) SetupTest() {
	s.l = NewLocal(50 * time.Millisecond)
}

func (s *localLockerSuite) TestSortedKeys() {
	s.Equal([]string{"a", "b", "c"}, sortedKeys([]string{"c", "a", "b", "a"}))
}

func (s *localLockerSuite) TestTimeout() {
	unlock, err := s.l.Lock(ctx.Background(), "k")
	s.Require().NoError(err)
	defer unlock()

	_, err = s.l.Lock(ctx.Background(), "k")
	s.ErrorIs(err, domain.ErrLockTimeout)
}

func (s *localLockerSuite) TestPartialAcquireIsReleased() {
	unlock, err := s.l.Lock(ctx.Background(), "b")
	s.Require().NoError(err)

	_, err = s.l.Lock(ctx.Background(), "a", "b")
	s.ErrorIs(err, domain.ErrLockTimeout)
	unlock()

	// "a" must not leak from the failed attempt
	unlockA, err := s.l.Lock(ctx.Background(), "a")
	s.Require().NoError(err)
	unlockA()
}

func (s *localLockerSuite) TestMutualExclusion() {
	l := NewLocal(time.Second)
	counter := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx.Background(), "counter")
			if err != nil {
				return
			}
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	s.Equal(20, counter)
}
