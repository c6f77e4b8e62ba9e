package item_test

import (
	"errors"
	"testing"
	"time"

	"rinna/internal/item"
	"rinna/internal/workflow"
)

func TestNewDefaults(t *testing.T) {
	now := time.Now()
	it, err := item.New(item.CreateRequest{Title: "Fix crash", Type: item.TypeBug}, now)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if it.ID == "" {
		t.Fatal("expected generated id")
	}
	if it.Status != workflow.StateFound {
		t.Fatalf("expected bug to start at found, got %s", it.Status)
	}
	if it.Priority != item.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", it.Priority)
	}
	if it.Version != 0 {
		t.Fatalf("expected version 0, got %d", it.Version)
	}
	if !it.CreatedAt.Equal(it.UpdatedAt) {
		t.Fatal("expected createdAt == updatedAt on creation")
	}
}

func TestInitialStateByType(t *testing.T) {
	cases := []struct {
		typ  item.Type
		want workflow.State
	}{
		{item.TypeBug, workflow.StateFound},
		{item.TypeFeature, workflow.StateToDo},
		{item.TypeChore, workflow.StateToDo},
		{item.TypeTask, workflow.StateToDo},
	}
	for _, tc := range cases {
		if got := item.InitialState(tc.typ); got != tc.want {
			t.Errorf("%s: expected initial state %s, got %s", tc.typ, tc.want, got)
		}
	}
}

func TestNewValidation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		req  item.CreateRequest
	}{
		{"missing title", item.CreateRequest{Type: item.TypeTask}},
		{"blank title", item.CreateRequest{Title: "   ", Type: item.TypeTask}},
		{"unknown type", item.CreateRequest{Title: "x", Type: "epic"}},
		{"unknown priority", item.CreateRequest{Title: "x", Type: item.TypeTask, Priority: "whenever"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := item.New(tc.req, now)
			var verr *item.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestTransformsDoNotMutateReceiver(t *testing.T) {
	now := time.Now()
	it, err := item.New(item.CreateRequest{Title: "Track", Type: item.TypeTask}, now)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	later := now.Add(time.Second)
	moved := it.WithStatus(workflow.StateInProgress, later)
	if it.Status != workflow.StateToDo {
		t.Fatalf("receiver mutated: status %s", it.Status)
	}
	if moved.Status != workflow.StateInProgress {
		t.Fatalf("copy missing status change: %s", moved.Status)
	}
	if !moved.UpdatedAt.After(it.UpdatedAt) {
		t.Fatal("expected UpdatedAt to advance on transform")
	}

	watched := it.WithWatcher("alice", later)
	if len(it.Watchers) != 0 {
		t.Fatal("receiver watcher set mutated")
	}
	if !watched.IsWatchedBy("alice") {
		t.Fatal("expected watcher to be added")
	}
	again := watched.WithWatcher("alice", later.Add(time.Second))
	if len(again.Watchers) != 1 {
		t.Fatalf("expected watcher dedupe, got %v", again.Watchers)
	}
}

func TestRecipients(t *testing.T) {
	now := time.Now()
	it, err := item.New(item.CreateRequest{Title: "Track", Type: item.TypeTask, Assignee: "bob"}, now)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	it = it.WithWatcher("alice", now).WithWatcher("bob", now).WithWatcher("carol", now)

	got := it.Recipients("carol")
	want := []string{"bob", "alice"}
	if len(got) != len(want) {
		t.Fatalf("expected recipients %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected recipients %v, got %v", want, got)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if typ, ok := item.ParseType(" BUG "); !ok || typ != item.TypeBug {
		t.Fatalf("ParseType failed: %v %v", typ, ok)
	}
	if _, ok := item.ParseType("epic"); ok {
		t.Fatal("expected parse failure for unknown type")
	}
	if pri, ok := item.ParsePriority("Urgent"); !ok || pri != item.PriorityUrgent {
		t.Fatalf("ParsePriority failed: %v %v", pri, ok)
	}
	if _, ok := item.ParsePriority(""); ok {
		t.Fatal("expected parse failure for empty priority")
	}
}
