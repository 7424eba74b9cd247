package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/capabilities.md", want: "owner/capabilities.md"},
		{name: "simple prefix", prefix: "kb", key: "owner/capabilities.md", want: "kb/owner/capabilities.md"},
		{name: "prefix trailing slash", prefix: "kb/", key: "owner/capabilities.md", want: "kb/owner/capabilities.md"},
		{name: "prefix and key slashes", prefix: "/kb/", key: "/owner/capabilities.md", want: "kb/owner/capabilities.md"},
		{name: "nested prefix", prefix: "kb/raw", key: "owner/capabilities.md", want: "kb/raw/owner/capabilities.md"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
