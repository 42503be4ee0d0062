package engine

import (
	"math/rand"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

func testStructure(measures int, styleName string, seed int64) *song.Structure {
	return song.New(measures, style.Get(styleName), rand.New(rand.NewSource(seed)))
}

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func sameEvents(a, b []Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
