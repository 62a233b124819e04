package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		want    payload
		wantErr bool
	}{
		{name: "valid json", body: `{"name": "test", "age": 30}`, want: payload{Name: "test", Age: 30}},
		{name: "invalid json", body: `{"name": "test", "age": 30,}`, wantErr: true},
		{name: "empty body decodes as empty object", body: ""},
		{name: "null body", body: "null"},
		{name: "array body", body: `[1,2]`, wantErr: true},
		{name: "oversized body", body: `{"name":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var got payload
			err := DecodeJSON(w, req, &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
