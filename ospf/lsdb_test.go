package ospf

import "testing"

func TestFresher(t *testing.T) {
	tests := []struct {
		name     string
		incoming LSAHeader
		stored   LSAHeader
		want     bool
	}{
		{
			name:     "higher sequence wins",
			incoming: LSAHeader{SequenceNumber: 101, Age: 3000},
			stored:   LSAHeader{SequenceNumber: 100, Age: 5},
			want:     true,
		},
		{
			name:     "lower sequence loses",
			incoming: LSAHeader{SequenceNumber: 99, Age: 5},
			stored:   LSAHeader{SequenceNumber: 100, Age: 3000},
			want:     false,
		},
		{
			name:     "equal sequence, stored at max age",
			incoming: LSAHeader{SequenceNumber: 100, Age: 200},
			stored:   LSAHeader{SequenceNumber: 100, Age: MaxAge},
			want:     true,
		},
		{
			name:     "equal sequence, incoming at max age flushes",
			incoming: LSAHeader{SequenceNumber: 100, Age: MaxAge},
			stored:   LSAHeader{SequenceNumber: 100, Age: 10},
			want:     true,
		},
		{
			name:     "equal sequence, lower age wins",
			incoming: LSAHeader{SequenceNumber: 100, Age: 20},
			stored:   LSAHeader{SequenceNumber: 100, Age: 50},
			want:     true,
		},
		{
			name:     "equal sequence, higher age loses",
			incoming: LSAHeader{SequenceNumber: 100, Age: 50},
			stored:   LSAHeader{SequenceNumber: 100, Age: 20},
			want:     false,
		},
		{
			name:     "equal sequence and age favors stored",
			incoming: LSAHeader{SequenceNumber: 100, Age: 30, Checksum: 0xbeef},
			stored:   LSAHeader{SequenceNumber: 100, Age: 30, Checksum: 0xcafe},
			want:     false,
		},
		{
			name:     "both at max age favors stored",
			incoming: LSAHeader{SequenceNumber: 100, Age: MaxAge},
			stored:   LSAHeader{SequenceNumber: 100, Age: MaxAge},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fresher(&tt.incoming, &tt.stored); got != tt.want {
				t.Errorf("fresher() = %v, want %v", got, tt.want)
			}
		})
	}
}
