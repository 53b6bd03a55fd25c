package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	out := Success(map[string]any{"key": "PROJ-1"})

	assert.True(t, out.IsSuccess())
	assert.False(t, out.IsError())
	assert.False(t, out.IsPending())
	assert.Equal(t, KindSuccess, out.Kind())
	assert.Equal(t, map[string]any{"key": "PROJ-1"}, out.Data())
	assert.Empty(t, out.Message())
}

func TestSuccessNilPayload(t *testing.T) {
	out := Success(nil)

	assert.True(t, out.IsSuccess())
	assert.Nil(t, out.Data())
}

func TestErrorf(t *testing.T) {
	out := Errorf("call to %s failed: %d", "/rest/api/3/serverInfo", 503)

	assert.True(t, out.IsError())
	assert.False(t, out.IsSuccess())
	assert.Equal(t, "call to /rest/api/3/serverInfo failed: 503", out.Message())
	assert.Nil(t, out.Data())
}

func TestPending(t *testing.T) {
	out := Pending()

	assert.True(t, out.IsPending())
	assert.False(t, out.IsSuccess())
	assert.False(t, out.IsError())
	assert.Equal(t, PendingMessage, out.Message())
}

func TestAsMap(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    map[string]any
	}{
		{
			name:    "success",
			outcome: Success(map[string]any{"total": 3}),
			want:    map[string]any{"status": "success", "data": map[string]any{"total": 3}},
		},
		{
			name:    "success with nil payload",
			outcome: Success(nil),
			want:    map[string]any{"status": "success", "data": nil},
		},
		{
			name:    "error",
			outcome: Errorf("boom"),
			want:    map[string]any{"status": "error", "message": "boom"},
		},
		{
			name:    "pending",
			outcome: Pending(),
			want:    map[string]any{"pending": true, "message": PendingMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.AsMap())
		})
	}
}
