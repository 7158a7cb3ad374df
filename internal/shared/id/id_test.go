package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{DesktopPrefix, RequestPrefix, SpanPrefix} {
		id := gen.GenerateWithPrefix(prefix)

		if !strings.HasPrefix(id, prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", prefix, id)
		}
		if !IsValidPrefixed(id, prefix) {
			t.Errorf("ID should validate with prefix %s: %s", prefix, id)
		}
	}
}

func TestTypedIDGeneration(t *testing.T) {
	deskID := NewDesktopID()
	reqID := NewRequestID()
	spanID := NewSpanID()

	if !strings.HasPrefix(deskID.String(), "desk_") {
		t.Errorf("DesktopID should start with 'desk_', got: %s", deskID)
	}
	if !strings.HasPrefix(reqID.String(), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}
	if !strings.HasPrefix(spanID.String(), "span_") {
		t.Errorf("SpanID should start with 'span_', got: %s", spanID)
	}
}

func TestIsValidPrefixed(t *testing.T) {
	if IsValidPrefixed("desk_not-a-ulid", DesktopPrefix) {
		t.Error("Malformed ULID should not validate")
	}
	if IsValidPrefixed(string(NewRequestID()), DesktopPrefix) {
		t.Error("Wrong prefix should not validate")
	}
}

func TestMonotonicOrdering(t *testing.T) {
	gen := NewGenerator()

	prev := gen.GenerateString()
	for i := 0; i < 100; i++ {
		next := gen.GenerateString()
		if next <= prev {
			t.Fatalf("IDs should sort in generation order: %s <= %s", next, prev)
		}
		prev = next
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := gen.GenerateString()
				mu.Lock()
				if seen[id] {
					t.Errorf("Duplicate ID generated: %s", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
}
