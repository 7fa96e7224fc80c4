package fetch

import "testing"

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain https url",
			raw:  "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "plain http url",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name: "uppercase scheme and host normalized",
			raw:  "HTTPS://EXAMPLE.COM/Path",
			want: "https://example.com/Path",
		},
		{
			name: "default http port stripped",
			raw:  "http://example.com:80/page",
			want: "http://example.com/page",
		},
		{
			name: "default https port stripped",
			raw:  "https://example.com:443/page",
			want: "https://example.com/page",
		},
		{
			name: "non-default port kept",
			raw:  "https://example.com:8443/page",
			want: "https://example.com:8443/page",
		},
		{
			name: "fragment dropped",
			raw:  "https://example.com/page#section",
			want: "https://example.com/page",
		},
		{
			name: "query kept",
			raw:  "https://example.com/search?q=go&page=2",
			want: "https://example.com/search?q=go&page=2",
		},
		{
			name: "path case preserved",
			raw:  "https://example.com/CaseSensitive/Path",
			want: "https://example.com/CaseSensitive/Path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIdentifier(tt.raw)
			if err != nil {
				t.Fatalf("ValidateIdentifier(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ValidateIdentifier(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateIdentifierRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"no scheme", "example.com/page"},
		{"relative path", "not-a-url"},
		{"unsupported scheme", "ftp://example.com/file"},
		{"file scheme", "file:///etc/passwd"},
		{"scheme only", "https://"},
		{"space in host", "http://exa mple.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := ValidateIdentifier(tt.raw); err == nil {
				t.Errorf("ValidateIdentifier(%q) = %q, want error", tt.raw, got)
			}
		})
	}
}

func TestValidateIdentifierDeterministic(t *testing.T) {
	first, err := ValidateIdentifier("HTTPS://Example.com:443/a?b=c#frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ValidateIdentifier("HTTPS://Example.com:443/a?b=c#frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same input normalized differently: %q vs %q", first, second)
	}
}
