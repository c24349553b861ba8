package reviews

import (
	"errors"
	"testing"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAppID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare id", input: "com.whatsapp", want: "com.whatsapp"},
		{name: "store url", input: "https://play.google.com/store/apps/details?id=com.example.app&hl=en", want: "com.example.app"},
		{name: "surrounding whitespace", input: "  com.example_app  ", want: "com.example_app"},
		{name: "empty", input: " ", wantErr: true},
		{name: "url without id", input: "https://play.google.com/store/apps", wantErr: true},
		{name: "invalid characters", input: "com.example/../x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAppID(tt.input)
			if tt.wantErr {
				var cfgErr *domain.InvalidConfigurationError
				require.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
