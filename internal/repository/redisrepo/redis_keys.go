package redisrepo

import "fmt"

const (
	POST_KEY       = "post:%d"       // <postID>
	USER_CACHE_KEY = "user-cache:%s" // <userID>
	PET_CACHE_KEY  = "pet-cache:%d"  // <petID>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}

func PetCacheKey(petID int64) string {
	return fmt.Sprintf(PET_CACHE_KEY, petID)
}
