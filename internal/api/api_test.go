package api_test

import (
	"context"
	"errors"
	"testing"

	"rinna/internal/api"
	"rinna/internal/item"
	"rinna/internal/store"
	"rinna/internal/testsupport"
	"rinna/internal/workflow"
)

func TestCreateAndTransitionItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	created, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{
		Title: "Fix crash",
		Type:  "bug",
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if created.Status != "found" {
		t.Fatalf("expected found, got %s", created.Status)
	}
	if len(created.NextStates) != 2 {
		t.Fatalf("expected triaged and cancelled next, got %v", created.NextStates)
	}

	moved, err := api.TransitionItem(ctx, cfg, nil, created.ID, "triaged", "alice")
	if err != nil {
		t.Fatalf("TransitionItem failed: %v", err)
	}
	if moved.Status != "triaged" || moved.Version != 1 {
		t.Fatalf("unexpected result: %+v", moved)
	}
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := api.CreateItem(context.Background(), cfg, nil, api.CreateItemRequest{
		Title: "Bad",
		Type:  "incident",
	})
	var verr *item.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTransitionItemRejectsUnknownState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	created, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "T", Type: "task"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	var verr *item.ValidationError
	if _, err := api.TransitionItem(ctx, cfg, nil, created.ID, "archived", "alice"); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var invalid *workflow.InvalidTransitionError
	if _, err := api.TransitionItem(ctx, cfg, nil, created.ID, "done", "alice"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestListItemsFilterByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	bug, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "Bug", Type: "bug"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if _, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "Task", Type: "task"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	found, err := api.ListItems(ctx, cfg, nil, api.ItemFilter{Status: "found"})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != bug.ID {
		t.Fatalf("unexpected filter result: %+v", found)
	}

	var verr *item.ValidationError
	if _, err := api.ListItems(ctx, cfg, nil, api.ItemFilter{Status: "bogus"}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for bogus status, got %v", err)
	}
}

func TestReleaseLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	rel, err := api.CreateRelease(ctx, cfg, nil, "1.2.0")
	if err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}

	it, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "Shipped", Type: "feature"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	// Release may be addressed by version string.
	updated, err := api.AddReleaseItem(ctx, cfg, nil, "1.2.0", it.ID)
	if err != nil {
		t.Fatalf("AddReleaseItem failed: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0] != it.ID {
		t.Fatalf("unexpected release items: %v", updated.Items)
	}

	byID, err := api.GetRelease(ctx, cfg, nil, rel.ID)
	if err != nil {
		t.Fatalf("GetRelease failed: %v", err)
	}
	if byID.Version != "1.2.0" {
		t.Fatalf("unexpected version %q", byID.Version)
	}

	var notFound *store.NotFoundError
	if _, err := api.AddReleaseItem(ctx, cfg, nil, "9.9.9", it.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for missing release, got %v", err)
	}
}

func TestNotificationFlow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	created, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{
		Title:    "Reviewed",
		Type:     "task",
		Assignee: "alice",
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	for _, target := range []string{"in_progress", "in_review", "done"} {
		if _, err := api.TransitionItem(ctx, cfg, nil, created.ID, target, "bob"); err != nil {
			t.Fatalf("TransitionItem to %s failed: %v", target, err)
		}
	}

	summary, err := api.NotificationSummary(ctx, cfg, "alice")
	if err != nil {
		t.Fatalf("NotificationSummary failed: %v", err)
	}
	if summary.Total == 0 {
		t.Fatal("expected unread notifications for assignee")
	}

	listed, err := api.ListNotifications(ctx, cfg, "alice", true)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	ok, err := api.MarkNotificationRead(ctx, cfg, "alice", listed[0].ID)
	if err != nil || !ok {
		t.Fatalf("MarkNotificationRead failed: ok=%v err=%v", ok, err)
	}

	marked, err := api.MarkAllNotificationsRead(ctx, cfg, "alice")
	if err != nil {
		t.Fatalf("MarkAllNotificationsRead failed: %v", err)
	}
	if marked != len(listed)-1 {
		t.Fatalf("expected %d newly marked, got %d", len(listed)-1, marked)
	}

	pruned, err := api.PruneNotifications(ctx, cfg, "", 0, true)
	if err != nil {
		t.Fatalf("PruneNotifications failed: %v", err)
	}
	if pruned != len(listed) {
		t.Fatalf("expected %d pruned, got %d", len(listed), pruned)
	}
}

func TestItemStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	if _, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "A", Type: "bug"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if _, err := api.CreateItem(ctx, cfg, nil, api.CreateItemRequest{Title: "B", Type: "task"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	stats, err := api.ItemStats(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("ItemStats failed: %v", err)
	}
	if stats["found"] != 1 || stats["to_do"] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}
