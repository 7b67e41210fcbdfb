package domain

import (
	"errors"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid https",
			raw:  "https://example.com/path",
		},
		{
			name: "valid http",
			raw:  "http://example.com",
		},
		{
			name: "valid with query",
			raw:  "https://example.com/search?q=test&page=2",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "plain text",
			raw:     "not-a-url",
			wantErr: true,
		},
		{
			name:    "missing scheme",
			raw:     "example.com/path",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			raw:     "ftp://example.com/file",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			raw:     "https://",
			wantErr: true,
		},
		{
			name:    "relative path",
			raw:     "/just/a/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("ValidateURL(%q) = %v, want ErrInvalidURL", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateURL(%q) = %v, want nil", tt.raw, err)
			}
		})
	}
}
