package models

import "encoding/json"

// Movie is a read-only snapshot of a movie record as the backend returns it.
// The client never mutates movies; a refetch replaces them wholesale.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
}

// Year returns the release year portion of the release date, if any
func (m Movie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return ""
}

// MovieList decodes both payload shapes the backend uses for movie lists:
// a bare JSON array or an object wrapping it as {"movies": [...]}
type MovieList []Movie

// UnmarshalJSON implements json.Unmarshaler
func (l *MovieList) UnmarshalJSON(data []byte) error {
	var movies []Movie
	if err := json.Unmarshal(data, &movies); err == nil {
		*l = movies
		return nil
	}

	var wrapped struct {
		Movies []Movie `json:"movies"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Movies
	return nil
}

// SearchResult is a Movie augmented with personalized fields that the
// backend fills in when the search request carries a user id
type SearchResult struct {
	Movie
	PredictedScore *float64 `json:"predicted_score,omitempty"`
	UserRating     *float64 `json:"user_rating,omitempty"`
	Watched        *bool    `json:"watched,omitempty"`
	IsWatchlisted  *bool    `json:"is_watchlisted,omitempty"`
}

// UserRating associates a user with a movie rating. The backend enforces
// one rating per (user, movie) pair; the client relies on that.
type UserRating struct {
	UserID           string  `json:"user_id"`
	MovieID          int     `json:"movie_id"`
	Rating           float64 `json:"rating"`
	CreatedAt        string  `json:"created_at,omitempty"`
	MovieTitle       string  `json:"movie_title"`
	MoviePosterPath  string  `json:"movie_poster_path"`
	MovieOverview    string  `json:"movie_overview,omitempty"`
	MovieReleaseDate string  `json:"movie_release_date,omitempty"`
	MovieVoteAverage float64 `json:"movie_vote_average,omitempty"`
}

// WatchlistEntry is one row of a user's watchlist with the movie display
// fields denormalized for list rendering
type WatchlistEntry struct {
	ID                    int     `json:"id"`
	UserID                string  `json:"user_id"`
	MovieID               int     `json:"movie_id"`
	CreatedAt             string  `json:"created_at"`
	MovieTitle            string  `json:"movie_title"`
	MoviePosterPath       string  `json:"movie_poster_path"`
	MovieOverview         string  `json:"movie_overview"`
	MovieReleaseDate      string  `json:"movie_release_date"`
	MovieOriginalLanguage string  `json:"movie_original_language"`
	MoviePopularity       float64 `json:"movie_popularity"`
	MovieVoteCount        int     `json:"movie_vote_count"`
	MovieVoteAverage      float64 `json:"movie_vote_average"`
}

// User is the externally issued identity attached to a session. The client
// never validates it beyond trusting the identity provider.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Username  string
	ImageURL  string
}

// DisplayName returns the best human-readable name for the user
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
