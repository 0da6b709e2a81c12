package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyPostByID(id int) string {
	return "post:" + strconv.Itoa(id)
}

func CacheKeyPostBySlug(slug string) string {
	return "post_by_slug:" + slug
}

func CacheKeyCategories() string {
	return "categories:active"
}

func CacheKeyTags() string {
	return "tags:all"
}

func CacheKeyTeamMembers(activeOnly bool) string {
	return "team_members:" + strconv.FormatBool(activeOnly)
}

func CacheKeyProjects(projectType string, featured, all bool) string {
	return "projects:" + projectType + ":" + strconv.FormatBool(featured) + ":" + strconv.FormatBool(all)
}

func CacheKeyUserByAccessToken(token []byte) string {
	return "user_by_access_token:" + string(token)
}
