package suggest

import (
	"sync"
	"testing"
	"time"
)

func TestMatches(t *testing.T) {
	idx := NewIndex()

	tests := []struct {
		input string
		want  []string
	}{
		{"react", []string{"react hooks", "react native"}},
		{"REACT", []string{"react hooks", "react native"}},
		{"ownership", []string{"rust ownership"}},
		{"zzz", nil},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := idx.Matches(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Matches(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMatchesCap(t *testing.T) {
	vocab := make([]string, 20)
	for i := range vocab {
		vocab[i] = "go topic " + string(rune('a'+i))
	}
	idx := NewIndexWith(vocab)

	got := idx.Matches("go")
	if len(got) != MaxSuggestions {
		t.Fatalf("got %d suggestions, want cap of %d", len(got), MaxSuggestions)
	}
	if got[0] != vocab[0] {
		t.Errorf("cap should keep vocabulary order, first = %q", got[0])
	}
}

func TestDebouncerFiresOncePerBurst(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(40*time.Millisecond, func(seq uint64, input string) {
		mu.Lock()
		fired = append(fired, input)
		mu.Unlock()
	})
	defer d.Stop()

	// Three keystrokes inside one window, then silence.
	d.Type("r")
	time.Sleep(10 * time.Millisecond)
	d.Type("re")
	time.Sleep(10 * time.Millisecond)
	d.Type("rea")

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("fired %d times, want 1: %v", len(fired), fired)
	}
	if fired[0] != "rea" {
		t.Errorf("fired with %q, want the last keystroke", fired[0])
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(20*time.Millisecond, func(seq uint64, input string) {
		mu.Lock()
		fired = append(fired, input)
		mu.Unlock()
	})
	defer d.Stop()

	d.Type("go")
	time.Sleep(80 * time.Millisecond)
	d.Type("rust")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 2 || fired[0] != "go" || fired[1] != "rust" {
		t.Fatalf("expected two separate fires [go rust], got %v", fired)
	}
}

func TestLatestDiscardsStaleLookups(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, func(uint64, string) {})
	defer d.Stop()

	first := d.Type("re")
	second := d.Type("react")

	if d.Latest(first) {
		t.Error("superseded keystroke should not be latest")
	}
	if !d.Latest(second) {
		t.Error("newest keystroke should be latest")
	}
}
