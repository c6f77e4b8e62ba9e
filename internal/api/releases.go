package api

import (
	"context"
	"log/slog"
	"time"

	"rinna/internal/config"
	"rinna/internal/item"
	"rinna/internal/store"
)

// CreateRelease records a new release with the given semver version string.
func CreateRelease(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (ReleaseView, error) {
	rel, err := item.NewRelease(version, time.Now())
	if err != nil {
		return ReleaseView{}, err
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return ReleaseView{}, err
	}
	defer sess.Close()

	if err := sess.store.CreateRelease(ctx, rel); err != nil {
		return ReleaseView{}, err
	}
	return FromRelease(rel), nil
}

// AddReleaseItem appends a work item to a release. The release may be
// referenced by ID or by version string.
func AddReleaseItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, releaseRef, itemID string) (ReleaseView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ReleaseView{}, err
	}
	defer sess.Close()

	rel, err := resolveRelease(ctx, sess.store, releaseRef)
	if err != nil {
		return ReleaseView{}, err
	}
	if err := sess.store.AddReleaseItem(ctx, rel.ID, itemID); err != nil {
		return ReleaseView{}, err
	}

	updated, err := sess.store.GetRelease(ctx, rel.ID)
	if err != nil {
		return ReleaseView{}, err
	}
	return FromRelease(*updated), nil
}

// GetRelease returns one release by ID or version string.
func GetRelease(ctx context.Context, cfg *config.Config, logger *slog.Logger, releaseRef string) (ReleaseView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ReleaseView{}, err
	}
	defer sess.Close()

	rel, err := resolveRelease(ctx, sess.store, releaseRef)
	if err != nil {
		return ReleaseView{}, err
	}
	return FromRelease(*rel), nil
}

// ListReleases returns all releases in creation order.
func ListReleases(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]ReleaseView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	releases, err := sess.store.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	return ReleaseViews(releases), nil
}

func resolveRelease(ctx context.Context, st *store.Store, ref string) (*item.Release, error) {
	rel, err := st.GetReleaseByVersion(ctx, ref)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		rel, err = st.GetRelease(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if rel == nil {
		return nil, &store.NotFoundError{Kind: "release", ID: ref}
	}
	return rel, nil
}
