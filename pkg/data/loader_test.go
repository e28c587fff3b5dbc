package data

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entry string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.csv.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(entry)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

const songsCSV = `Track,Release Date,Spotify Streams,Spotify Popularity,Track Score
Song A,4/26/2024,"390,470,936",92,725.4
Song B,5/4/2024,"323,703,884",,545.9
Song C,3/19/2024,N/A,92,538.4
`

func TestReadZipCSV(t *testing.T) {
	path := writeZip(t, "songs.csv", []byte(songsCSV))

	tbl, err := ReadZipCSV(path, "songs.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"Track", "Release_Date", "Spotify_Streams", "Spotify_Popularity", "Track_Score"}, tbl.Names())
	assert.Equal(t, []int{0, 1, 2}, tbl.Index)

	streams, err := tbl.Col("Spotify_Streams")
	require.NoError(t, err)
	assert.Equal(t, String, streams.Kind, "thousands separators keep the column as text")
	assert.Equal(t, "390,470,936", streams.Text[0])
	assert.True(t, streams.IsMissing(2))

	pop, err := tbl.Col("Spotify_Popularity")
	require.NoError(t, err)
	assert.Equal(t, Numeric, pop.Kind)
	assert.Equal(t, 92.0, pop.Nums[0])
	assert.True(t, pop.IsMissing(1))

	score, err := tbl.Col("Track_Score")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{725.4, 545.9, 538.4}, score.Nums, 1e-9)
}

func TestReadZipCSVEntryNotFound(t *testing.T) {
	path := writeZip(t, "songs.csv", []byte(songsCSV))

	_, err := ReadZipCSV(path, "other.csv")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestReadZipCSVMissingArchive(t *testing.T) {
	_, err := ReadZipCSV(filepath.Join(t.TempDir(), "absent.zip"), "songs.csv")
	require.ErrorIs(t, err, ErrArchive)
}

func TestReadCSVLatin1(t *testing.T) {
	raw := []byte("Track,Artist\nCaf\xe9 del Mar,Beyonc\xe9\n")

	tbl, err := ReadCSV(strings.NewReader(string(raw)))
	require.NoError(t, err)

	artist, err := tbl.Col("Artist")
	require.NoError(t, err)
	assert.Equal(t, "Beyoncé", artist.Text[0])
	track, err := tbl.Col("Track")
	require.NoError(t, err)
	assert.Equal(t, "Café del Mar", track.Text[0])
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n\"open\n"))
	require.ErrorIs(t, err, ErrParse)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Track Name,Track Score\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"Track_Name", "Track_Score"}, tbl.Names())
	assert.Empty(t, tbl.Index)
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrParse)
}

func TestReadCSVUnknownEncoding(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a\n1\n"), WithEncoding("no-such-charset"))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestReadCSVOptions(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a;b\n1;missing\n2;x\n"),
		WithDelimiter(';'), WithNAValues("missing"), WithEncoding("UTF-8"))
	require.NoError(t, err)

	b, err := tbl.Col("b")
	require.NoError(t, err)
	assert.Equal(t, String, b.Kind)
	assert.True(t, b.IsMissing(0))
	assert.Equal(t, "x", b.Text[1])
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Spotify Streams", "Spotify_Streams"},
		{"All Time Rank", "All_Time_Rank"},
		{"ISRC", "ISRC"},
		{"Apple Music  Playlist", "Apple_Music__Playlist"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in))
	}
}
