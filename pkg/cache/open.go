package cache

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Open returns the cache backend named by url:
//
//	""  or "none"                  NullCache
//	"file:///path" or "/path"      FileCache
//	"redis://..." / "rediss://..." RedisCache
//	"mongodb://..." / "mongodb+srv://..." MongoCache
func Open(ctx context.Context, url string) (Cache, error) {
	switch {
	case url == "" || url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "file://"):
		return NewFileCache(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisCache(ctx, url)
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return NewMongoCache(ctx, url)
	case !strings.Contains(url, "://"):
		return NewFileCache(url)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, url)
}

func databaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return ""
	}
	return cs.Database
}
