package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_blockRange_split(t *testing.T) {
	tests := []struct {
		r     *blockRange
		want  *blockRange
		want1 *blockRange
	}{
		{
			r:     newBlockRange(1, 100),
			want:  newBlockRange(1, 50),
			want1: newBlockRange(51, 100),
		},
		{
			r:     newBlockRange(1, 101),
			want:  newBlockRange(1, 51),
			want1: newBlockRange(52, 101),
		},
		{
			r:     newBlockRange(3, 4),
			want:  newBlockRange(3, 3),
			want1: newBlockRange(4, 4),
		},
		{
			r:     newBlockRange(2, 3),
			want:  newBlockRange(2, 2),
			want1: newBlockRange(3, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			got, got1 := tt.r.split()
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want1, got1)
			require.False(t, got.single() && got1.single() && tt.r.begin+1 < tt.r.end)
		})
	}
	require.True(t, newBlockRange(7, 7).single())
}
