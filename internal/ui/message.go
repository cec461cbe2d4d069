package ui

import "github.com/tobyfell/movx/internal/models"

type searchResultsMsg struct {
	page *models.SearchPage
	err  error
}

type detailFetchedMsg struct {
	detail *models.MovieDetail
	err    error
}

type movieSavedMsg struct {
	movie *models.Movie
	err   error
}
