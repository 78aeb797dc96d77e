package tui

import (
	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

type searchDoneMsg struct {
	articles []newsapi.Article
}

type searchFailedMsg struct {
	query string
	err   error
}

type keySavedMsg struct{}

type keySaveFailedMsg struct {
	err error
}

type browserErrMsg struct {
	err error
}
