package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StatusType
		wantErr bool
	}{
		{name: "uppercase", input: "PUBLISHED", want: StatusPublished},
		{name: "lowercase", input: "pending", want: StatusPending},
		{name: "mixed case with spaces", input: "  Discarded ", want: StatusDiscarded},
		{name: "unknown", input: "ARCHIVED", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RoleType
		wantErr bool
	}{
		{name: "user", input: "ROLE_USER", want: RoleUser},
		{name: "admin lowercase", input: "role_admin", want: RoleAdmin},
		{name: "unknown", input: "ROLE_SUPERADMIN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserHasRole(t *testing.T) {
	u := User{Roles: []RoleType{RoleUser}}

	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.HasRole(RoleAdmin))
}
