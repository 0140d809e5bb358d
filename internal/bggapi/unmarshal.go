package bggapi

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const invalidUsernameMessage = "Invalid username specified"

func UnmarshalCollection(data []byte) (Collection, error) {

	// unmarshal
	var raw struct {
		XMLName    xml.Name
		TotalItems int `xml:"totalitems,attr"`
		Items      []struct {
			ObjectId GameId `xml:"objectid,attr"`
			Subtype  string `xml:"subtype,attr"`
			Name     string `xml:"name"`
			Stats    struct {
				Rating struct {
					Value string `xml:"value,attr"`
				} `xml:"rating"`
			} `xml:"stats"`
		} `xml:"item"`
		Errors []struct {
			Message string `xml:"message"`
		} `xml:"error"`
	}
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Collection{}, fmt.Errorf("collection is not correctly formatted: %w", err)
	}

	// BGG reports errors with a 200 and an errors document
	switch raw.XMLName.Local {
	case "items":
	case "errors":
		if len(raw.Errors) == 0 {
			return Collection{}, &ApiError{Message: "empty error document"}
		}
		message := strings.TrimSpace(raw.Errors[0].Message)
		if message == invalidUsernameMessage {
			return Collection{}, ErrUnknownUsername
		}
		return Collection{}, &ApiError{Message: message}
	default:
		return Collection{}, fmt.Errorf("unexpected root element %q in collection", raw.XMLName.Local)
	}

	collection := Collection{TotalItems: raw.TotalItems, Items: make([]CollectionItemBrief, 0, len(raw.Items))}
	for _, item := range raw.Items {
		collection.Items = append(collection.Items, CollectionItemBrief{
			Id:         item.ObjectId,
			Name:       strings.TrimSpace(item.Name),
			Subtype:    ItemType(item.Subtype),
			UserRating: UnmarshalRating(item.Stats.Rating.Value),
		})
	}

	return collection, nil
}

// BGG uses "N/A" for games the user did not rate
func UnmarshalRating(value string) Rating {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Rating{}
	}
	return NewRating(number)
}
