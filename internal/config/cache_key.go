package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuestionCatalogKey returns the cache key for the rendered question catalog.
func (r *CacheKeyStruct) QuestionCatalogKey() string {
	return "catalog:questions"
}

// LeaderboardSnapshotKey returns the cache key for the rendered leaderboard.
func (r *CacheKeyStruct) LeaderboardSnapshotKey() string {
	return "leaderboard:snapshot"
}

var CacheKey = NewCacheKeyStruct()
