package config

import (
	"os"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		def       string
		want      string
	}{
		{
			name:      "variable set",
			key:       "TEST_GETENV_SET",
			value:     "custom",
			shouldSet: true,
			def:       "default",
			want:      "custom",
		},
		{
			name: "variable not set",
			key:  "TEST_GETENV_MISSING",
			def:  "default",
			want: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := getenv(tt.key, tt.def); got != tt.want {
				t.Errorf("getenv(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{name: "valid int", value: "42", def: 7, want: 42},
		{name: "invalid int falls back", value: "forty-two", def: 7, want: 7},
		{name: "empty falls back", value: "", def: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_GETENV_INT"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			} else {
				os.Unsetenv(key)
			}
			if got := getenvInt(key, tt.def); got != tt.want {
				t.Errorf("getenvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", value: "3s", def: time.Second, want: 3 * time.Second},
		{name: "invalid duration falls back", value: "not-a-duration", def: time.Second, want: time.Second},
		{name: "empty falls back", value: "", def: 2 * time.Second, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_MUST_DURATION"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			} else {
				os.Unsetenv(key)
			}
			if got := mustDuration(key, tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{name: "true", value: "true", def: false, want: true},
		{name: "false", value: "false", def: true, want: false},
		{name: "garbage falls back", value: "maybe", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_MUST_BOOL"
			t.Setenv(key, tt.value)
			if got := mustBool(key, tt.def); got != tt.want {
				t.Errorf("mustBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "10.0.0.0/8", want: []string{"10.0.0.0/8"}},
		{name: "spaces and quotes", input: ` "10.0.0.0/8" , '192.168.1.1' `, want: []string{"10.0.0.0/8", "192.168.1.1"}},
		{name: "trailing comma", input: "a,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("Load() BaseURL = %v, want local default", cfg.BaseURL)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Errorf("Load() StoreBackend = %v, want %v", cfg.StoreBackend, StoreMemory)
	}
	if cfg.ThrottleWindow != 2*time.Second {
		t.Errorf("Load() ThrottleWindow = %v, want 2s", cfg.ThrottleWindow)
	}
	if cfg.SlugLength != 6 {
		t.Errorf("Load() SlugLength = %v, want 6", cfg.SlugLength)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SNIP_STORE", "postgres")

	defer func() {
		if recover() == nil {
			t.Error("Load() should panic on an unknown store backend")
		}
	}()
	Load()
}
