package bot

import (
	"bluebgg/internal/bggapi"
	"cmp"
	"slices"
)

// Order for a ranking: rated games first, highest rating first,
// then every unrated game. Unrated games compare equal to each other
func CompareUserRatingDesc(a, b bggapi.CollectionItemBrief) int {
	switch {
	case a.UserRating.Rated && !b.UserRating.Rated:
		return -1
	case !a.UserRating.Rated && b.UserRating.Rated:
		return 1
	case !a.UserRating.Rated && !b.UserRating.Rated:
		return 0
	}
	return cmp.Compare(b.UserRating.Value, a.UserRating.Value)
}

// Sorted copy of the games. Games that compare equal keep the order
// they were received in
func SortByUserRatingDesc(games []bggapi.CollectionItemBrief) []bggapi.CollectionItemBrief {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, CompareUserRatingDesc)
	return sorted
}

func Take[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
