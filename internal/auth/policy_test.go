package auth

import (
	"testing"

	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name      string
		role      domain.UserRole
		subjectID int64
		ownerID   int64
		want      bool
	}{
		{"passenger owns resource", domain.RolePassenger, 1, 1, true},
		{"passenger other resource", domain.RolePassenger, 1, 2, false},
		{"staff any resource", domain.RoleStaff, 1, 2, true},
		{"admin any resource", domain.RoleAdmin, 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.role, tt.subjectID, tt.ownerID))
		})
	}
}

func TestRoleGates(t *testing.T) {
	assert.True(t, IsStaff(domain.RoleStaff))
	assert.True(t, IsStaff(domain.RoleAdmin))
	assert.False(t, IsStaff(domain.RolePassenger))

	assert.True(t, IsAdmin(domain.RoleAdmin))
	assert.False(t, IsAdmin(domain.RoleStaff))
	assert.False(t, IsAdmin(domain.RolePassenger))
}
