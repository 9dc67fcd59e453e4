package handlers

import (
	"net/http"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/sirupsen/logrus"
)

// ReviewsHandler renders the my-reviews page
type ReviewsHandler struct {
	renderer *Renderer
	logger   *logrus.Logger
}

// NewReviewsHandler creates a new reviews handler
func NewReviewsHandler(renderer *Renderer, logger *logrus.Logger) *ReviewsHandler {
	return &ReviewsHandler{renderer: renderer, logger: logger}
}

type reviewsPage struct {
	Ratings []models.UserRating
	Err     bool
}

// ServeHTTP handles GET /my-reviews (behind RequireUser)
func (h *ReviewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := visitor(r)
	userID := state.UserID()

	page := reviewsPage{}
	ratings, err := state.Ratings.Refresh(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to refresh ratings")
		page.Err = true
	} else {
		page.Ratings = ratings
	}

	h.renderer.Render(w, "reviews", newPageData(r, "My Reviews", page))
}
