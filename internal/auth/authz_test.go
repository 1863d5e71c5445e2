package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("admin"))
	assert.False(t, IsAdmin("user"))
	assert.False(t, IsAdmin(""))
	assert.False(t, IsAdmin("Admin"))
}

func TestIsSelfOrAdmin(t *testing.T) {
	assert.True(t, IsSelfOrAdmin("u1", "u1", "user"), "self")
	assert.True(t, IsSelfOrAdmin("u1", "u2", "admin"), "admin acting on another user")
	assert.False(t, IsSelfOrAdmin("u1", "u2", "user"), "unrelated user")
}
