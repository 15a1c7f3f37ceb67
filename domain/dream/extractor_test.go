package dream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "dreamscape/pkg/errors"
)

func TestNewEntry(t *testing.T) {
	entry, err := NewEntry("  I flew over a blue ocean  ", []string{"Blue Ocean"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "I flew over a blue ocean", entry.Dream)
	assert.Equal(t, []string{"Blue Ocean"}, entry.Entities)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestNewEntryRejectsEmptyText(t *testing.T) {
	_, err := NewEntry("   ", nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestNewEntryDefaultsEntities(t *testing.T) {
	entry, err := NewEntry("no named things here", nil)
	require.NoError(t, err)
	assert.NotNil(t, entry.Entities)
	assert.Empty(t, entry.Entities)
}

func TestFallbackExtractor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single proper noun",
			text: "we walked through Paris at night",
			want: []string{"Paris"},
		},
		{
			name: "multi-word phrase",
			text: "sailing toward the Blue Ocean under the Moon",
			want: []string{"Blue Ocean", "Moon"},
		},
		{
			name: "duplicates collapse",
			text: "Moon rose, then Moon fell",
			want: []string{"Moon"},
		},
		{
			name: "no capitalized terms",
			text: "nothing stood out at all",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FallbackExtractor{}.Extract(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEntities(t *testing.T) {
	got := NormalizeEntities([]string{" blue ocean ", "", "MOON", "Blue Ocean", "  "})
	assert.Equal(t, []string{"Blue Ocean", "Moon"}, got)
}

func TestGeminiExtractor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "generateContent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "blue ocean, Moon; ship\nLighthouse"}]}}]
		}`))
	}))
	defer server.Close()

	extractor := NewGeminiExtractor("test-key", WithEndpoint(server.URL))

	got, err := extractor.Extract(context.Background(), "I flew over a blue ocean")
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue Ocean", "Moon", "Ship", "Lighthouse"}, got)
}

func TestGeminiExtractorServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	extractor := NewGeminiExtractor("test-key", WithEndpoint(server.URL))

	_, err := extractor.Extract(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
}
