package ports

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestResolveLogicalIndex(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		available []string
		want      []Assignment
	}{
		{
			name:      "lan index into switch ports",
			tokens:    []string{"lan2"},
			available: []string{"1", "2", "3"},
			want:      []Assignment{{Port: "2", Tagged: false}},
		},
		{
			name:      "lan index tagged",
			tokens:    []string{"lan2:t"},
			available: []string{"1", "2", "3"},
			want:      []Assignment{{Port: "2", Tagged: true}},
		},
		{
			name:      "raw physical id",
			tokens:    []string{"2"},
			available: []string{"1", "2", "3"},
			want:      []Assignment{{Port: "2", Tagged: false}},
		},
		{
			name:      "lan index into dsa interface names",
			tokens:    []string{"lan1"},
			available: []string{"eth1", "eth2", "eth3"},
			want:      []Assignment{{Port: "eth1", Tagged: false}},
		},
		{
			name:      "dsa interface name literal",
			tokens:    []string{"eth2"},
			available: []string{"eth1", "eth2", "eth3"},
			want:      []Assignment{{Port: "eth2", Tagged: false}},
		},
		{
			name:      "dsa tagged",
			tokens:    []string{"lan1:t"},
			available: []string{"eth1", "eth2"},
			want:      []Assignment{{Port: "eth1", Tagged: true}},
		},
		{
			name:      "out of range dropped",
			tokens:    []string{"lan10"},
			available: []string{"1", "2", "3"},
			want:      []Assignment{},
		},
		{
			name:      "unparsable dropped, rest survives",
			tokens:    []string{"bogus", "lan1"},
			available: []string{"eth1", "eth2"},
			want:      []Assignment{{Port: "eth1", Tagged: false}},
		},
		{
			name:      "order preserved",
			tokens:    []string{"lan3", "lan1:t"},
			available: []string{"1", "2", "3"},
			want: []Assignment{
				{Port: "3", Tagged: false},
				{Port: "1", Tagged: true},
			},
		},
		{
			name:      "duplicates not deduplicated",
			tokens:    []string{"lan1", "lan1"},
			available: []string{"eth1", "eth2"},
			want: []Assignment{
				{Port: "eth1", Tagged: false},
				{Port: "eth1", Tagged: false},
			},
		},
		{
			name:      "lan name that exists literally wins over index",
			tokens:    []string{"lan2"},
			available: []string{"lan1", "lan2", "lan3"},
			want:      []Assignment{{Port: "lan2", Tagged: false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.tokens, tt.available, zap.NewNop())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.tokens, tt.available, got, tt.want)
			}
		})
	}
}

func TestResolveEveryIndexInRange(t *testing.T) {
	available := []string{"eth1", "eth2", "eth3", "eth4", "eth5"}
	for k := 1; k <= len(available); k++ {
		token := []string{pickToken(k)}
		got := Resolve(token, available, zap.NewNop())
		if len(got) != 1 || got[0].Port != available[k-1] {
			t.Errorf("lan%d resolved to %v, want %s", k, got, available[k-1])
		}
	}

	// One past the end yields nothing.
	got := Resolve([]string{"lan6"}, available, zap.NewNop())
	if len(got) != 0 {
		t.Errorf("lan6 resolved to %v, want nothing", got)
	}
}

func pickToken(k int) string {
	return "lan" + string(rune('0'+k))
}

func TestResolveIdempotent(t *testing.T) {
	tokens := []string{"lan1", "lan2:t", "eth3", "bogus"}
	available := []string{"eth1", "eth2", "eth3"}

	first := Resolve(tokens, available, zap.NewNop())
	second := Resolve(tokens, available, zap.NewNop())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution not idempotent: %v vs %v", first, second)
	}
}
