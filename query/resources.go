package query

import (
	"github.com/goliatone/go-krishi-portal/cache"
	"github.com/goliatone/go-krishi-portal/remote"
)

// Resource names. List resources double as offline cache names.
const (
	ResourceProfile     = "currentUserProfile"
	ResourceUserProfile = "userProfile"
	ResourceRole        = "currentUserRole"
	ResourceIsAdmin     = "isCallerAdmin"

	ResourceAdvisories  = "cropAdvisories"
	ResourceAdvisory    = "cropAdvisory"
	ResourcePrices      = "mandiPrices"
	ResourcePrice       = "mandiPrice"
	ResourceSchemes     = "governmentSchemes"
	ResourceScheme      = "governmentScheme"
	ResourceSoilReports = "soilReports"
	ResourceSoilReport  = "soilReport"
	ResourceQueries     = "expertQueries"
	ResourceQuery       = "expertQuery"
)

// ListResources are mirrored to the offline cache on every successful read.
var ListResources = []string{
	ResourceAdvisories,
	ResourcePrices,
	ResourceSchemes,
	ResourceSoilReports,
	ResourceQueries,
}

var keys = cache.NewDefaultKeySerializer()

// ItemKey is the cache key of a single-item read.
func ItemKey(resource string, id uint64) string {
	return keys.SerializeKey(resource, id)
}

func userProfileKey(p remote.Principal) string {
	return keys.SerializeKey(ResourceUserProfile, p)
}
