package bggapi

import "net/url"

// Server side filters for a collection query
type CollectionQueryParams struct {
	itemType        ItemType
	excludeItemType ItemType
}

func NewCollectionQueryParams() CollectionQueryParams {
	return CollectionQueryParams{}
}

// Only include items of this type
func (params CollectionQueryParams) ItemType(itemType ItemType) CollectionQueryParams {
	params.itemType = itemType
	return params
}

// Leave out items of this type. Useful because expansions are
// reported with the board game type as well
func (params CollectionQueryParams) ExcludeItemType(itemType ItemType) CollectionQueryParams {
	params.excludeItemType = itemType
	return params
}

func (params CollectionQueryParams) GetItemType() ItemType {
	return params.itemType
}

func (params CollectionQueryParams) GetExcludeItemType() ItemType {
	return params.excludeItemType
}

// Query string for the collection route.
// Brief results keep the response small, and stats are needed to get the rating
func (params CollectionQueryParams) Encode(username Username) string {
	values := url.Values{}
	values.Set("username", string(username))
	values.Set("brief", "1")
	values.Set("stats", "1")
	if params.itemType != "" {
		values.Set("subtype", string(params.itemType))
	}
	if params.excludeItemType != "" {
		values.Set("excludesubtype", string(params.excludeItemType))
	}
	return values.Encode()
}
