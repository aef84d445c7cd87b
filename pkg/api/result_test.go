package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorPayload_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want ErrorPayload
	}{
		{
			name: "field errors",
			body: `{"email": ["not found"], "password": ["This field is required."]}`,
			want: ErrorPayload{Fields: map[string][]string{
				"email":    {"not found"},
				"password": {"This field is required."},
			}},
		},
		{
			name: "message key",
			body: `{"message": "Login failed"}`,
			want: ErrorPayload{Message: "Login failed"},
		},
		{
			name: "drf detail key",
			body: `{"detail": "Invalid token."}`,
			want: ErrorPayload{Message: "Invalid token."},
		},
		{
			name: "error key",
			body: `{"error": "Cannot edit a closed incident"}`,
			want: ErrorPayload{Message: "Cannot edit a closed incident"},
		},
		{
			name: "non field errors",
			body: `{"non_field_errors": ["Invalid email or password"]}`,
			want: ErrorPayload{NonFieldErrors: []string{"Invalid email or password"}},
		},
		{
			name: "single string field value",
			body: `{"email": "already taken"}`,
			want: ErrorPayload{Fields: map[string][]string{"email": {"already taken"}}},
		},
		{
			name: "mixed",
			body: `{"message": "Validation failed", "non_field_errors": ["try again"], "priority": ["bad choice"]}`,
			want: ErrorPayload{
				Message:        "Validation failed",
				NonFieldErrors: []string{"try again"},
				Fields:         map[string][]string{"priority": {"bad choice"}},
			},
		},
		{
			name: "bare string body",
			body: `"service unavailable"`,
			want: ErrorPayload{Message: "service unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got ErrorPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestErrorPayload_Summary(t *testing.T) {
	t.Parallel()

	t.Run("message wins", func(t *testing.T) {
		t.Parallel()
		p := &ErrorPayload{
			Message:        "top level",
			NonFieldErrors: []string{"nfe"},
			Fields:         map[string][]string{"email": {"bad"}},
		}
		require.Equal(t, "top level", p.Summary())
	})

	t.Run("non field errors next", func(t *testing.T) {
		t.Parallel()
		p := &ErrorPayload{
			NonFieldErrors: []string{"Invalid email or password"},
			Fields:         map[string][]string{"email": {"bad"}},
		}
		require.Equal(t, "Invalid email or password", p.Summary())
	})

	t.Run("first field in key order", func(t *testing.T) {
		t.Parallel()
		p := &ErrorPayload{Fields: map[string][]string{
			"zz":    {"last"},
			"email": {"not found"},
		}}
		require.Equal(t, "email: not found", p.Summary())
	})

	t.Run("nil payload", func(t *testing.T) {
		t.Parallel()
		var p *ErrorPayload
		require.Empty(t, p.Summary())
	})
}

func TestResult(t *testing.T) {
	t.Parallel()

	ok := Success(42)
	require.True(t, ok.OK())
	require.Equal(t, 42, ok.Data)

	bad := Failure[int](&ErrorPayload{Message: "nope"})
	require.False(t, bad.OK())
	require.Equal(t, "nope", bad.Err.Summary())

	// Failure with a nil payload still reads as a failure.
	empty := Failure[int](nil)
	require.False(t, empty.OK())
	require.NotNil(t, empty.Err)
}

func TestErrorPayload_Field(t *testing.T) {
	t.Parallel()

	p := &ErrorPayload{Fields: map[string][]string{"email": {"not found"}}}
	require.Equal(t, []string{"not found"}, p.Field("email"))
	require.Nil(t, p.Field("password"))

	var nilPayload *ErrorPayload
	require.Nil(t, nilPayload.Field("email"))
}
