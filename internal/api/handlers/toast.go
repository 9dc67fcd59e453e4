package handlers

import (
	"encoding/json"
	"net/http"
)

// ToastHandler exposes the visitor's notification slot to the pages
type ToastHandler struct{}

// NewToastHandler creates a new toast handler
func NewToastHandler() *ToastHandler {
	return &ToastHandler{}
}

type toastResponse struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// ServeHTTP handles GET /api/toast
func (h *ToastHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := toastResponse{}
	if state := visitor(r); state != nil {
		resp.Message, resp.Visible = state.Notifier.Current()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
