package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVideoURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "youtube watch link",
			in:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube short link",
			in:   "https://youtu.be/abc123",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "youtube watch link with extra params",
			in:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube embed is a fixed point",
			in:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "vimeo link",
			in:   "https://vimeo.com/555666",
			want: "https://player.vimeo.com/video/555666",
		},
		{
			name: "vimeo player link is a fixed point",
			in:   "https://player.vimeo.com/video/555666",
			want: "https://player.vimeo.com/video/555666",
		},
		{
			name: "unrecognized url passes through",
			in:   "https://example.com/video.mp4",
			want: "https://example.com/video.mp4",
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   "  https://youtu.be/abc123  ",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeVideoURL(tc.in))
		})
	}
}

func TestNormalizeVideoURLIsIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/abc123",
		"https://vimeo.com/555666",
		"https://example.com/video.mp4",
	}

	for _, in := range inputs {
		once := NormalizeVideoURL(in)
		assert.Equal(t, once, NormalizeVideoURL(once), "input %q", in)
	}
}
