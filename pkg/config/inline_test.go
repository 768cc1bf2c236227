package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/organizer/pkg/errors"
)

func TestParseInlineRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{name: "blank", input: "  ", want: nil},
		{name: "json", input: `{"txt": "Texts", ".py": "Scripts"}`, want: map[string]string{"txt": "Texts", ".py": "Scripts"}},
		{name: "single_quoted_json", input: `{'.txt': 'Texts'}`, want: map[string]string{".txt": "Texts"}},
		{name: "pairs", input: "txt=Texts,py = Scripts,", want: map[string]string{"txt": "Texts", "py": "Scripts"}},
		{name: "folder_with_spaces", input: "md=My Notes", want: map[string]string{"md": "My Notes"}},
		{name: "missing_folder", input: "txt=", wantErr: true},
		{name: "missing_separator", input: "txt", wantErr: true},
		{name: "broken_json", input: `{"txt": `, wantErr: true},
		{name: "non_string_folder", input: `{"txt": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInlineRules(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
