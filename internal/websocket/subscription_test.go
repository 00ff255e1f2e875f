package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-06", "2024-06", false},
		{"1999-12", "1999-12", false},
		{"2024-6", "", true},
		{"2024-13", "", true},
		{"june", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonthKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthFilter_Wants(t *testing.T) {
	june := StatusUpdated(2024, 6, nil)
	july := StatusUpdated(2024, 7, nil)
	template := TemplateUpdated(nil)

	empty := NewMonthFilter()
	assert.True(t, empty.Wants(june))
	assert.True(t, empty.Wants(template))

	f := NewMonthFilter("2024-06")
	assert.True(t, f.Wants(june))
	assert.False(t, f.Wants(july))
	assert.True(t, f.Wants(template), "unscoped events always pass")
}

func TestMonthFilter_Apply(t *testing.T) {
	f := NewMonthFilter("2024-06")

	require.NoError(t, f.apply(command{Action: actionSubscribe, Month: "2024-07"}))
	assert.True(t, f.Wants(StatusUpdated(2024, 7, nil)))

	require.NoError(t, f.apply(command{Action: actionUnsubscribe, Month: "2024-06"}))
	assert.False(t, f.Wants(StatusUpdated(2024, 6, nil)))

	assert.Error(t, f.apply(command{Action: "replace", Month: "2024-08"}))
	assert.Error(t, f.apply(command{Action: actionSubscribe, Month: "08/2024"}))
}

func TestMonthFilter_UnsubscribeLastMonth(t *testing.T) {
	f := NewMonthFilter("2024-06")

	require.NoError(t, f.apply(command{Action: actionUnsubscribe, Month: "2024-06"}))
	assert.False(t, f.Wants(StatusUpdated(2024, 6, nil)))
	assert.False(t, f.Wants(StatusUpdated(2024, 7, nil)))
	assert.True(t, f.Wants(TemplateUpdated(nil)))

	unscoped := NewMonthFilter()
	require.NoError(t, unscoped.apply(command{Action: actionUnsubscribe, Month: "2024-01"}))
	assert.False(t, unscoped.Wants(StatusUpdated(2024, 1, nil)))
	assert.False(t, unscoped.Wants(StatusUpdated(2024, 2, nil)))
}
