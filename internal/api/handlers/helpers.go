package handlers

import (
	"net/http"

	"github.com/ndelvaux/flickd/internal/api/middleware"
	"github.com/ndelvaux/flickd/internal/session"
)

// newPageData assembles the common page envelope: signed-in user and the
// current toast slot
func newPageData(r *http.Request, title string, data interface{}) PageData {
	pd := PageData{Title: title, Data: data}
	if state := middleware.StateFrom(r); state != nil {
		pd.User = state.User()
		if msg, ok := state.Notifier.Current(); ok {
			pd.Toast = msg
		}
	}
	return pd
}

// visitor returns the request's session state; it is always present behind
// the WithSession middleware
func visitor(r *http.Request) *session.State {
	return middleware.StateFrom(r)
}
