package ui

import (
	"fmt"

	"github.com/tobyfell/movx/internal/models"
)

// resultItem wraps [models.SearchResult] to implement list.Item.
type resultItem struct {
	result models.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	desc := i.result.Year
	if i.result.Type != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.result.Type)
	}
	return desc
}

// movieItem wraps [models.Movie] to implement list.Item.
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := i.movie.Year
	if i.movie.ImdbID != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.ImdbID)
	}
	return desc
}
