package bggapi

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const ROUTE_GAME_PAGE = "/boardgame/%d"
const ROUTE_USER_COLLECTION_PAGE = "/collection/user/%s"

type GameId uint64
type Username string

type ItemType string

const (
	BoardGame          ItemType = "boardgame"
	BoardGameExpansion ItemType = "boardgameexpansion"
)

// A rating given by a user. Rated is false when the user
// has not rated the game
type Rating struct {
	Value float64
	Rated bool
}

type CollectionItemBrief struct {
	Id         GameId
	Name       string
	Subtype    ItemType
	UserRating Rating
}

type Collection struct {
	TotalItems int
	Items      []CollectionItemBrief
}

func NewRating(value float64) Rating {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Rating{}
	}
	return Rating{Value: value, Rated: true}
}

// Shortest representation of the value, "Unrated" when there is none
func (rating Rating) String() string {
	if !rating.Rated {
		return "Unrated"
	}
	return strconv.FormatFloat(rating.Value, 'f', -1, 64)
}

func (username Username) CollectionUrl() string {
	return BGG_SCHEMA + fmt.Sprintf(ROUTE_USER_COLLECTION_PAGE, url.PathEscape(string(username)))
}

func (id GameId) Url() string {
	return BGG_SCHEMA + fmt.Sprintf(ROUTE_GAME_PAGE, id)
}
