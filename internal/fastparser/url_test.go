package fastparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want URL
	}{
		{"https://example.com", URL{Scheme: "https", Host: "example.com", Path: "example.com"}},
		{"https://example.com/", URL{Scheme: "https", Host: "example.com", Path: "/"}},
		{"http://example.com/api/users", URL{Scheme: "http", Host: "example.com", Path: "/api/users"}},
		{"example.com", URL{Host: "example.com", Path: "example.com"}},
		{"example.com/a/b", URL{Host: "example.com", Path: "/a/b"}},
		{"localhost:8080/health", URL{Host: "localhost:8080", Path: "/health"}},
		{"https://a.b/p?x=1&y=2", URL{Scheme: "https", Host: "a.b", Path: "/p", Query: "x=1&y=2"}},
		{"https://a.b?x=1", URL{Scheme: "https", Host: "a.b", Path: "a.b", Query: "x=1"}},
		{"https://a.b/p?x=1#frag", URL{Scheme: "https", Host: "a.b", Path: "/p", Query: "x=1", Fragment: "frag"}},
		{"https://a.b#top", URL{Scheme: "https", Host: "a.b", Path: "a.b", Fragment: "top"}},
		{"https://a.b/p?next=http://c.d/", URL{Scheme: "https", Host: "a.b", Path: "/p", Query: "next=http://c.d/"}},
		{"a.b/redirect?to=ftp://x", URL{Host: "a.b", Path: "/redirect", Query: "to=ftp://x"}},
		{"ftp://user:pw@files.example/x", URL{Scheme: "ftp", Host: "user:pw@files.example", Path: "/x"}},
		{"https://", URL{Scheme: "https", Host: "", Path: ""}},
	}
	for _, tt := range tests {
		tt.want.Raw = tt.raw
		got := ParseURL(tt.raw)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseURL(%q) (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseURL_PathKeepsLeadingSlash(t *testing.T) {
	u := ParseURL("https://example.com/v1")
	if u.Path[0] != '/' {
		t.Errorf("Path = %q, want leading slash", u.Path)
	}
}
