package utils

// TMDB image CDN base and the size buckets the pages use
const imageBaseURL = "https://image.tmdb.org/t/p"

const (
	ImageSizePoster   = "w500"
	ImageSizeCard     = "w300"
	ImageSizeBackdrop = "w1280"
	ImageSizeBanner   = "w300_and_h450_bestv2"
)

// ImageURL builds a full TMDB image URL from a poster/backdrop path.
// Returns empty for an empty path so templates can fall back to a
// placeholder.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "/" + size + path
}
