package repositories

import (
	"context"
	"fmt"

	"sanitrack/internal/constants"
	"sanitrack/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// invalidateToiletStatus bumps the version counters guarding the per-toilet
// status view and the bulk list. Called from every rating or task write;
// readers refuse to serve a cached view whose recorded version no longer
// matches the counter, which also covers the reader that composed its view
// before this write and caches it after. If a counter cannot be bumped the
// cached view itself is dropped so the stale entry cannot be served for its
// remaining TTL.
func invalidateToiletStatus(
	ctx context.Context,
	db database.DB,
	log logger.Logger,
	toiletID int,
) {
	bumpStatusVersion(ctx, db, log,
		fmt.Sprintf("%s:%d", constants.ToiletStatusVersionPrefix, toiletID),
		fmt.Sprintf("%s:%d", constants.ToiletStatusCachePrefix, toiletID))
	bumpStatusVersion(ctx, db, log,
		constants.ToiletStatusAllVersionKey,
		constants.ToiletStatusAllKey)
}

func bumpStatusVersion(
	ctx context.Context,
	db database.DB,
	log logger.Logger,
	versionKey, viewKey string,
) {
	_, err := database.NewCacheBuilder(db.Cache.Status, versionKey).
		WithContext(ctx).
		Increment()
	if err == nil {
		return
	}

	if deleteErr := database.NewCacheBuilder(db.Cache.Status, viewKey).
		WithContext(ctx).
		Delete(); deleteErr != nil {
		log.Er("failed to invalidate status cache entry", deleteErr,
			"versionKey", versionKey, "bumpError", err)
	}
}
