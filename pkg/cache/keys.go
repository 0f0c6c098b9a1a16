package cache

import "fmt"

// Key builders for catalog caches. All keys share the "seatly:cache:" prefix
// so DeletePattern can scope invalidation per entity.

const prefix = "seatly:cache"

func MovieListKey() string {
	return prefix + ":movies:list"
}

func MovieKey(movieID string) string {
	return fmt.Sprintf("%s:movies:%s", prefix, movieID)
}

func MoviePattern() string {
	return prefix + ":movies:*"
}

func ScreeningListKey() string {
	return prefix + ":screenings:list"
}

func ScreeningKey(screeningID string) string {
	return fmt.Sprintf("%s:screenings:%s", prefix, screeningID)
}

func ScreeningPattern() string {
	return prefix + ":screenings:*"
}

func HallListKey() string {
	return prefix + ":halls:list"
}

func HallPattern() string {
	return prefix + ":halls:*"
}
