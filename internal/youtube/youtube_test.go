package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoID = "dQw4w9WgXcQ"

func TestExtractVideoIDAcceptedForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "bare id", input: videoID},
		{name: "bare id padded", input: "  " + videoID + "\n"},
		{name: "watch", input: "https://www.youtube.com/watch?v=" + videoID},
		{name: "watch with extra params", input: "https://www.youtube.com/watch?list=PL123&v=" + videoID + "&t=42s"},
		{name: "watch without scheme", input: "youtube.com/watch?v=" + videoID},
		{name: "mobile", input: "https://m.youtube.com/watch?v=" + videoID},
		{name: "short link", input: "https://youtu.be/" + videoID},
		{name: "short link with query", input: "youtu.be/" + videoID + "?si=abc"},
		{name: "short link with www", input: "https://www.youtu.be/" + videoID},
		{name: "embed", input: "https://www.youtube.com/embed/" + videoID + "?rel=0"},
		{name: "shorts", input: "https://youtube.com/shorts/" + videoID},
		{name: "live", input: "https://www.youtube.com/live/" + videoID + "?feature=share"},
		{name: "http scheme", input: "http://www.youtube.com/watch?v=" + videoID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ExtractVideoID(tt.input)
			require.True(t, ok, "expected %q to be accepted", tt.input)
			assert.Equal(t, videoID, got)
		})
	}
}

func TestExtractVideoIDRejections(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"https://vimeo.com/123456",
		"https://youtube.com.evil.example/watch?v=" + videoID,
		"https://music.youtube.com/watch?v=" + videoID,
		"https://www.youtube.com/",
		"https://www.youtube.com/channel/UC123",
		"https://youtu.be/",
		"https://www.youtube.com/watch?v=%zz",
		"https://www.youtube.com/watch?v=a%23b",
		"https://www.youtube.com/watch?v=x%26v%3Dy",
		"https://youtu.be/abc%23def",
		"https://www.youtube.com/embed/abc%3Ddef",
		"short",
	}

	for _, input := range inputs {
		_, ok := ExtractVideoID(input)
		assert.False(t, ok, "expected %q to be rejected", input)
	}
}

func TestNormalizeProducesCanonicalURL(t *testing.T) {
	t.Parallel()

	ref, ok := Normalize("https://youtu.be/" + videoID)
	require.True(t, ok)
	assert.Equal(t, videoID, ref.ID)
	assert.Equal(t, "https://www.youtube.com/watch?v="+videoID, ref.CanonicalURL)

	_, ok = Normalize("https://example.com/watch?v=" + videoID)
	assert.False(t, ok)
}

func TestCanonicalURLAlwaysEmbeddable(t *testing.T) {
	t.Parallel()

	inputs := []string{
		videoID,
		"https://youtu.be/" + videoID,
		"https://www.youtube.com/shorts/abcDEF12345",
		"https://www.youtube.com/live/_-_-_-_-_-_",
		"m.youtube.com/watch?v=XYZ",
		"https://www.youtube.com/watch?v=a%23b",
		"https://youtu.be/abc%23def",
		"https://www.youtube.com/watch?v=x%26v%3Dy",
	}

	for _, input := range inputs {
		id, ok := ExtractVideoID(input)
		if !ok {
			_, normalized := Normalize(input)
			assert.False(t, normalized, input)
			continue
		}

		ref, ok := Normalize(input)
		require.True(t, ok, input)
		again, ok := ExtractVideoID(ref.CanonicalURL)
		require.True(t, ok, input)
		assert.Equal(t, id, again, input)

		embed, ok := EmbedURL(ref.CanonicalURL)
		require.True(t, ok, input)
		assert.Equal(t, "https://www.youtube.com/embed/"+id, embed)
	}
}

func TestThumbnailURL(t *testing.T) {
	t.Parallel()

	thumb, ok := ThumbnailURL("https://www.youtube.com/watch?v=" + videoID)
	require.True(t, ok)
	assert.Equal(t, "https://img.youtube.com/vi/"+videoID+"/hqdefault.jpg", thumb)
}
