package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/rectify/pkg/table"
)

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		values []table.Value
		want   table.Value
		ok     bool
	}{
		{
			name:   "empty input",
			values: nil,
			ok:     false,
		},
		{
			name:   "all missing",
			values: []table.Value{table.Missing, table.Missing},
			ok:     false,
		},
		{
			name:   "singleton is its own mode",
			values: []table.Value{table.NewString("W")},
			want:   table.NewString("W"),
			ok:     true,
		},
		{
			name: "strict majority",
			values: []table.Value{
				table.NewString("H"),
				table.NewString("H"),
				table.NewString("B"),
			},
			want: table.NewString("H"),
			ok:   true,
		},
		{
			name: "two-way tie is no mode",
			values: []table.Value{
				table.NewString("N"),
				table.NewString("Y"),
			},
			ok: false,
		},
		{
			name: "missing values do not count",
			values: []table.Value{
				table.NewString("F"),
				table.Missing,
				table.NewString("F"),
				table.NewString("R"),
			},
			want: table.NewString("F"),
			ok:   true,
		},
		{
			name: "integer codes",
			values: []table.Value{
				table.NewInt(1),
				table.NewInt(1),
				table.NewInt(0),
			},
			want: table.NewInt(1),
			ok:   true,
		},
		{
			name: "three-way tie is no mode",
			values: []table.Value{
				table.NewString("A"),
				table.NewString("B"),
				table.NewString("C"),
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.values)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			} else {
				assert.True(t, got.IsMissing())
			}
		})
	}
}
