package httpcache

import (
	"net/http"
	"testing"
	"time"
)

func TestIsFresh(t *testing.T) {
	tests := []struct {
		name    string
		expires string
		want    bool
	}{
		{
			name:    "future expires",
			expires: time.Now().Add(time.Hour).UTC().Format(http.TimeFormat),
			want:    true,
		},
		{
			name:    "past expires",
			expires: time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat),
			want:    false,
		},
		{
			name:    "epoch",
			expires: time.Unix(0, 0).UTC().Format(http.TimeFormat),
			want:    false,
		},
		{
			name:    "missing",
			expires: "",
			want:    false,
		},
		{
			name:    "unparsable",
			expires: "not a date",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make(http.Header)
			if tt.expires != "" {
				h.Set("Expires", tt.expires)
			}
			if got := IsFresh(h); got != tt.want {
				t.Errorf("IsFresh() = %v, want %v", got, tt.want)
			}
		})
	}
}
