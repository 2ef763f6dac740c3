package httpcache

import (
	"net/http"
	"reflect"
	"sort"
	"testing"
)

func TestVaryNames(t *testing.T) {
	tests := []struct {
		name string
		vary []string
		want []string
	}{
		{
			name: "absent",
			vary: nil,
			want: nil,
		},
		{
			name: "single header",
			vary: []string{"Accept-Encoding"},
			want: []string{"accept-encoding"},
		},
		{
			name: "space separated",
			vary: []string{"Foo Bar"},
			want: []string{"bar", "foo"},
		},
		{
			name: "comma separated",
			vary: []string{"Foo, Bar"},
			want: []string{"bar", "foo"},
		},
		{
			name: "multiple vary headers",
			vary: []string{"Foo", "Bar"},
			want: []string{"bar", "foo"},
		},
		{
			name: "duplicates collapsed",
			vary: []string{"Foo, foo, FOO"},
			want: []string{"foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make(http.Header)
			for _, v := range tt.vary {
				h.Add("Vary", v)
			}
			got := varyNames(h)
			sort.Strings(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("varyNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_MatchesRequest(t *testing.T) {
	tests := []struct {
		name     string
		vary     string
		stored   map[string]string
		incoming map[string]string
		want     bool
	}{
		{
			name:     "no vary matches anything",
			vary:     "",
			stored:   map[string]string{"Foo": "Foo"},
			incoming: map[string]string{"Foo": "Bling"},
			want:     true,
		},
		{
			name:     "matching values",
			vary:     "Foo Bar",
			stored:   map[string]string{"Foo": "Foo", "Bar": "Bar"},
			incoming: map[string]string{"Foo": "Foo", "Bar": "Bar"},
			want:     true,
		},
		{
			name:     "mismatching values",
			vary:     "Foo Bar",
			stored:   map[string]string{"Foo": "Foo", "Bar": "Bar"},
			incoming: map[string]string{"Foo": "Bling", "Bar": "Bam"},
			want:     false,
		},
		{
			name:     "value comparison is case sensitive",
			vary:     "Foo",
			stored:   map[string]string{"Foo": "value"},
			incoming: map[string]string{"Foo": "VALUE"},
			want:     false,
		},
		{
			name:     "name comparison is case insensitive",
			vary:     "FOO",
			stored:   map[string]string{"foo": "value"},
			incoming: map[string]string{"Foo": "value"},
			want:     true,
		},
		{
			name:     "absent on both sides is equal",
			vary:     "Foo",
			stored:   nil,
			incoming: nil,
			want:     true,
		},
		{
			name:     "absent on one side only",
			vary:     "Foo",
			stored:   map[string]string{"Foo": "value"},
			incoming: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{
				RequestHeaders:  headersFrom(tt.stored),
				ResponseHeaders: make(http.Header),
			}
			if tt.vary != "" {
				entry.ResponseHeaders.Set("Vary", tt.vary)
			}
			if got := entry.matchesRequest(headersFrom(tt.incoming)); got != tt.want {
				t.Errorf("matchesRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_SameVarySignature(t *testing.T) {
	tests := []struct {
		name string
		a, b Entry
		want bool
	}{
		{
			name: "same set same values",
			a:    varyEntry("Foo Bar", map[string]string{"Foo": "1", "Bar": "2"}),
			b:    varyEntry("Bar, Foo", map[string]string{"Foo": "1", "Bar": "2"}),
			want: true,
		},
		{
			name: "same set different values",
			a:    varyEntry("Foo Bar", map[string]string{"Foo": "1", "Bar": "2"}),
			b:    varyEntry("Foo Bar", map[string]string{"Foo": "1", "Bar": "3"}),
			want: false,
		},
		{
			name: "different sets",
			a:    varyEntry("Foo", map[string]string{"Foo": "1"}),
			b:    varyEntry("Foo Bar", map[string]string{"Foo": "1", "Bar": "2"}),
			want: false,
		},
		{
			name: "both without vary",
			a:    varyEntry("", nil),
			b:    varyEntry("", nil),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.sameVarySignature(tt.b); got != tt.want {
				t.Errorf("sameVarySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func headersFrom(values map[string]string) http.Header {
	h := make(http.Header)
	for name, value := range values {
		h.Set(name, value)
	}
	return h
}

func varyEntry(vary string, request map[string]string) Entry {
	entry := Entry{
		RequestHeaders:  headersFrom(request),
		ResponseHeaders: make(http.Header),
	}
	if vary != "" {
		entry.ResponseHeaders.Set("Vary", vary)
	}
	return entry
}
