package smi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedSchemaRange(t *testing.T) {
	t.Parallel()
	min, max := SupportedSchemaRange()
	assert.LessOrEqual(t, min, max)
	assert.True(t, IsSupportedSchemaVersion(min))
	assert.True(t, IsSupportedSchemaVersion(max))
	assert.False(t, IsSupportedSchemaVersion(min-1))
	assert.False(t, IsSupportedSchemaVersion(max+1))
}

func TestSchemaVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     any
		want    int
		wantErr string
	}{
		{name: "float64", doc: map[string]any{"schema_version": float64(1)}, want: 1},
		{name: "json.Number", doc: map[string]any{"schema_version": json.Number("2")}, want: 2},
		{name: "int", doc: map[string]any{"schema_version": 3}, want: 3},
		{name: "missing", doc: map[string]any{}, wantErr: "schema_version: required"},
		{name: "fractional", doc: map[string]any{"schema_version": 1.5}, wantErr: "invalid value"},
		{name: "string", doc: map[string]any{"schema_version": "1"}, wantErr: "invalid value"},
		{name: "not an object", doc: []any{}, wantErr: "not an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SchemaVersion(tt.doc)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
