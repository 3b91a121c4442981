package service

import (
	"regexp"
	"sync"
	"testing"
)

var trackingPattern = regexp.MustCompile(`^PKG-\d{8}-[0-9A-F]{6}$`)

func TestGenerateTrackingIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateTrackingID()
		if !trackingPattern.MatchString(id) {
			t.Fatalf("tracking id %q does not match expected format", id)
		}
	}
}

func TestGenerateTrackingIDSpread(t *testing.T) {
	// 24 bits of randomness makes occasional birthday collisions
	// possible, so tolerate a couple rather than demanding strict
	// uniqueness.
	const n = 1000

	seen := make(map[string]bool, n)
	duplicates := 0
	for i := 0; i < n; i++ {
		id := GenerateTrackingID()
		if seen[id] {
			duplicates++
		}
		seen[id] = true
	}

	if duplicates > 3 {
		t.Fatalf("%d duplicate tracking ids in %d generations", duplicates, n)
	}
}

func TestGenerateTrackingIDConcurrent(t *testing.T) {
	const workers = 50

	var wg sync.WaitGroup
	ids := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = GenerateTrackingID()
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if !trackingPattern.MatchString(id) {
			t.Errorf("worker %d: malformed tracking id %q", i, id)
		}
	}
}
