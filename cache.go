package main

import (
	"fmt"

	"trackex/models"

	"github.com/dgraph-io/ristretto"
)

// userCache keeps recently resolved User rows in front of the database so
// /api/auth/me does not hit storage on every request. Entries are dropped
// whenever the underlying row changes (password change, account deletion).
type userCache struct {
	cache *ristretto.Cache
}

func newUserCache() (*userCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &userCache{cache: c}, nil
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (u *userCache) get(id uint) (*models.User, bool) {
	v, ok := u.cache.Get(userCacheKey(id))
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func (u *userCache) set(user *models.User) {
	u.cache.Set(userCacheKey(user.ID), user, 1)
}

func (u *userCache) del(id uint) {
	u.cache.Del(userCacheKey(id))
}
