package constants

// Cache key layout for the status cache database. The derived status views
// are cached per toilet and as one bulk list. Alongside each view lives a
// version counter that every rating or task write for the toilet increments;
// a cached view is only served while its recorded version still matches the
// counter, so a view composed before a write can never outlive it.
const (
	ToiletStatusCachePrefix   = "toilet_status"
	ToiletStatusAllKey        = "toilet_status:all"
	ToiletStatusVersionPrefix = "toilet_status_ver"
	ToiletStatusAllVersionKey = "toilet_status_ver:all"
)
