package pipeline

import "streamprep/pkg/data"

// Column names of the streaming-metrics dataset after header normalization.
const (
	ReleaseDate = "Release_Date"
	ReleaseYear = "Release_Year"
	Target      = "Track_Score"
)

// NumericColumns are stored with thousands separators in the source file and
// are coerced to numbers before any analysis.
var NumericColumns = []string{
	"Spotify_Streams", "Spotify_Playlist_Count", "Spotify_Playlist_Reach",
	"YouTube_Views", "YouTube_Likes", "TikTok_Posts", "TikTok_Likes",
	"TikTok_Views", "YouTube_Playlist_Reach", "AirPlay_Spins", "Deezer_Playlist_Reach",
	"Pandora_Streams", "Pandora_Track_Stations", "Shazam_Counts", "Track_Score",
}

// Features are the model inputs, in output column order.
var Features = []string{
	"Spotify_Streams", "Spotify_Playlist_Count", "Spotify_Playlist_Reach", "Spotify_Popularity",
	"YouTube_Views", "YouTube_Likes", "TikTok_Posts", "TikTok_Likes", "TikTok_Views",
}

// Schema is every column the pipeline references, checked right after loading.
func Schema() data.Schema {
	return data.NewSchema(data.Numeric, NumericColumns...).
		Merge(data.NewSchema(data.Numeric, Features...)).
		Merge(data.NewSchema(data.Date, ReleaseDate))
}
