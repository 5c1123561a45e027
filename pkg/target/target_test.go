package target_test

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    target.Target
		wantErr bool
	}{
		{"web", target.Web, false},
		{"APP", target.App, false},
		{" app ", target.App, false},
		{"", target.Web, false},
		{"desktop", target.Web, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := target.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	out, err := json.Marshal(map[string]target.Target{"target": target.App})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"app"}`, string(out))

	var back map[string]target.Target
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, target.App, back["target"])
}
