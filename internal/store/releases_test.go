package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rinna/internal/item"
	"rinna/internal/store"
	"rinna/internal/testsupport"
)

func mustNewRelease(t *testing.T, version string) item.Release {
	t.Helper()
	rel, err := item.NewRelease(version, time.Now())
	if err != nil {
		t.Fatalf("NewRelease failed: %v", err)
	}
	return rel
}

func TestCreateReleaseAndFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rel := mustNewRelease(t, "1.0.0")
	if err := st.CreateRelease(ctx, rel); err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}

	fetched, err := st.GetRelease(ctx, rel.ID)
	if err != nil {
		t.Fatalf("GetRelease failed: %v", err)
	}
	if fetched == nil || fetched.Version != "1.0.0" {
		t.Fatalf("unexpected release: %#v", fetched)
	}

	byVersion, err := st.GetReleaseByVersion(ctx, "1.0.0")
	if err != nil {
		t.Fatalf("GetReleaseByVersion failed: %v", err)
	}
	if byVersion == nil || byVersion.ID != rel.ID {
		t.Fatalf("unexpected release by version: %#v", byVersion)
	}
}

func TestCreateReleaseDuplicateVersionFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.CreateRelease(ctx, mustNewRelease(t, "2.0.0")); err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}

	err := st.CreateRelease(ctx, mustNewRelease(t, "2.0.0"))
	var verr *item.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for duplicate version, got %v", err)
	}
}

func TestAddReleaseItemAppendOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rel := mustNewRelease(t, "1.1.0")
	if err := st.CreateRelease(ctx, rel); err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}
	first := testsupport.NewItem(t, st, item.CreateRequest{Title: "First", Type: item.TypeFeature})
	second := testsupport.NewItem(t, st, item.CreateRequest{Title: "Second", Type: item.TypeBug})

	if err := st.AddReleaseItem(ctx, rel.ID, first.ID); err != nil {
		t.Fatalf("AddReleaseItem failed: %v", err)
	}
	if err := st.AddReleaseItem(ctx, rel.ID, second.ID); err != nil {
		t.Fatalf("AddReleaseItem failed: %v", err)
	}
	// Re-adding is a no-op, never a removal.
	if err := st.AddReleaseItem(ctx, rel.ID, first.ID); err != nil {
		t.Fatalf("duplicate AddReleaseItem failed: %v", err)
	}

	fetched, err := st.GetRelease(ctx, rel.ID)
	if err != nil {
		t.Fatalf("GetRelease failed: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("expected 2 items, got %v", fetched.Items)
	}
	if !fetched.Contains(first.ID) || !fetched.Contains(second.ID) {
		t.Fatalf("missing items in release: %v", fetched.Items)
	}
}

func TestAddReleaseItemMissingTargets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rel := mustNewRelease(t, "3.0.0")
	if err := st.CreateRelease(ctx, rel); err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}
	it := testsupport.NewItem(t, st, item.CreateRequest{Title: "Exists", Type: item.TypeTask})

	var notFound *store.NotFoundError
	if err := st.AddReleaseItem(ctx, "missing-release", it.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for missing release, got %v", err)
	}
	if err := st.AddReleaseItem(ctx, rel.ID, "missing-item"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for missing item, got %v", err)
	}
}

func TestListReleasesOrdered(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for _, version := range []string{"0.1.0", "0.2.0", "1.0.0-rc.1"} {
		if err := st.CreateRelease(ctx, mustNewRelease(t, version)); err != nil {
			t.Fatalf("CreateRelease %s failed: %v", version, err)
		}
	}

	releases, err := st.ListReleases(ctx)
	if err != nil {
		t.Fatalf("ListReleases failed: %v", err)
	}
	if len(releases) != 3 {
		t.Fatalf("expected 3 releases, got %d", len(releases))
	}
}
