package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var out []Event
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var evt Event
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			t.Fatalf("invalid JSON line: %v\nline: %s", err, line)
		}
		out = append(out, evt)
	}
	return out
}

func TestNewEmitter_EmptyPathIsNil(t *testing.T) {
	t.Parallel()
	em, err := NewEmitter("")
	if err != nil {
		t.Fatalf("NewEmitter(\"\"): %v", err)
	}
	if em != nil {
		t.Fatal("expected nil emitter for empty path")
	}
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	_, err := NewEmitter("/nonexistent/dir/events.jsonl")
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestEmit_WritesValidJSONL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: ts, Kind: KindLoadDone},
		{Timestamp: ts, Kind: KindLoadFailed, Rule: "BROKEN_EDGE", Source: "acme.yaml", Message: "edge to unknown node"},
		{Timestamp: ts, Kind: KindBuildDone},
	}
	for _, evt := range events {
		if err := em.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readEvents(t, path)
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestEmit_StampsZeroTimestamp(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	em.now = func() time.Time { return fixed }

	if err := em.Emit(Event{Kind: KindLoadDone}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	em.Close()

	got := readEvents(t, path)
	if len(got) != 1 || !got[0].Timestamp.Equal(fixed) {
		t.Errorf("events = %+v, want one event stamped %v", got, fixed)
	}
}

func TestEmit_ConcurrentSafety(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(idx int) {
			defer wg.Done()
			if err := em.Emit(Event{Kind: KindLoadDone, Data: map[string]int{"idx": idx}}); err != nil {
				t.Errorf("Emit from goroutine %d: %v", idx, err)
			}
		}(i)
	}
	wg.Wait()

	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := readEvents(t, path); len(got) != n {
		t.Fatalf("expected %d events, got %d", n, len(got))
	}
}

func TestNilEmitter_NoOp(t *testing.T) {
	t.Parallel()
	var em *Emitter

	if err := em.Emit(Event{Kind: KindLoadDone}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestEmit_AppendsToExistingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "append.jsonl")

	for _, kind := range []string{KindLoadDone, KindBuildDone} {
		em, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := em.Emit(Event{Kind: kind}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		em.Close()
	}

	if got := readEvents(t, path); len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Event{Kind: KindLoadDone})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"rule"`, `"source"`, `"message"`, `"data"`} {
		if strings.Contains(s, key) {
			t.Errorf("expected %s to be omitted, got: %s", key, s)
		}
	}
}
