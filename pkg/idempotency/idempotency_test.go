package idempotency

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"absent", "", "", false},
		{"trimmed", "  order-42 ", "order-42", false},
		{"too long", strings.Repeat("k", MaxLength+1), "", true},
		{"control char", "abc\x01", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/sales", nil)
			if tt.header != "" {
				r.Header.Set(Header, tt.header)
			}

			got, err := Key(r)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
