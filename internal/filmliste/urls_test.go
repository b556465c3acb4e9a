package filmliste

import "testing"

func TestResolveURL(t *testing.T) {
	base := "https://pdvideosdaserste-a.akamaihd.net/int/2024/11/01/clip_512.mp4"

	tests := []struct {
		name string
		base string
		rel  string
		want string
	}{
		{
			name: "offset and suffix",
			base: base,
			rel:  "44|2024/11/01/clip_960.mp4",
			want: "https://pdvideosdaserste-a.akamaihd.net/int/2024/11/01/clip_960.mp4",
		},
		{
			name: "short offset keeps scheme only",
			base: "https://cdn.example.org/a/b.mp4",
			rel:  "8|example.net/c.mp4",
			want: "https://example.net/c.mp4",
		},
		{
			name: "empty variant",
			base: base,
			rel:  "",
			want: "",
		},
		{
			name: "absolute URL without pipe passes through",
			base: base,
			rel:  "https://cdn.example.org/direct.mp4",
			want: "https://cdn.example.org/direct.mp4",
		},
		{
			name: "relative junk without pipe is dropped",
			base: base,
			rel:  "clip_hd.mp4",
			want: "",
		},
		{
			name: "non-numeric offset is dropped",
			base: base,
			rel:  "abc|clip.mp4",
			want: "",
		},
		{
			name: "zero offset is dropped",
			base: base,
			rel:  "0|clip.mp4",
			want: "",
		},
		{
			name: "offset beyond base is dropped",
			base: "short",
			rel:  "99|clip.mp4",
			want: "",
		},
		{
			name: "offset equal to base length appends",
			base: "https://cdn.example.org/",
			rel:  "24|hd.mp4",
			want: "https://cdn.example.org/hd.mp4",
		},
		{
			name: "malformed but absolute keeps raw value",
			base: base,
			rel:  "999|https://cdn.example.org/odd.mp4",
			want: "",
		},
		{
			name: "empty base with absolute variant",
			base: "",
			rel:  "https://cdn.example.org/only.mp4",
			want: "https://cdn.example.org/only.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveURL(tt.base, tt.rel); got != tt.want {
				t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
			}
		})
	}
}
