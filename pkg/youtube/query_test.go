package youtube

import (
	"strings"
	"testing"
)

func TestBuildQueryTerm(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title passes through",
			title: "how to start a podcast",
			want:  "how to start a podcast",
		},
		{
			name:  "punctuation stripped",
			title: `"Ultimate" guide: sourdough (for beginners!)`,
			want:  "Ultimate guide sourdough for beginners",
		},
		{
			name:  "repeated dots collapsed",
			title: "vlog...day one...continued",
			want:  "vlog.day one.continued",
		},
		{
			name:  "whitespace collapsed",
			title: "  weird   spacing\ttitle ",
			want:  "weird spacing title",
		},
		{
			name:  "long title truncated at word boundary",
			title: "the complete beginners roadmap to learning woodworking from absolute scratch",
			want:  "the complete beginners roadmap to learning",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQueryTerm(tt.title)
			if got != tt.want {
				t.Fatalf("BuildQueryTerm(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if len(got) > queryMaxLen {
				t.Fatalf("term %q exceeds max length", got)
			}
		})
	}
}

func TestBuildQueryTermNeverSplitsWords(t *testing.T) {
	title := strings.Repeat("abcde ", 20)
	got := BuildQueryTerm(title)
	if strings.HasSuffix(got, "abcd") || strings.HasSuffix(got, "abc") {
		t.Fatalf("term %q ends mid-word", got)
	}
}
