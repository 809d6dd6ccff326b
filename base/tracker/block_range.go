package tracker

import (
	"fmt"

	"github.com/x-xyz/launchpad/domain"
)

type blockRange struct {
	begin domain.BlockNumber
	end   domain.BlockNumber // inclusive
}

func newBlockRange(begin, end domain.BlockNumber) *blockRange {
	return &blockRange{begin: begin, end: end}
}

func (r *blockRange) single() bool {
	return r.begin >= r.end
}

func (r *blockRange) split() (*blockRange, *blockRange) {
	mid := r.begin + (r.end-r.begin)/2
	return newBlockRange(r.begin, mid), newBlockRange(mid+1, r.end)
}

func (r *blockRange) String() string {
	return fmt.Sprintf("blockRange{%d-%d}", r.begin, r.end)
}
