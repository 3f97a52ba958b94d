package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "ai", NormalizeTagName(" AI "))
	assert.Equal(t, "machine learning", NormalizeTagName("Machine Learning\t"))
	assert.Equal(t, "", NormalizeTagName("   "))
}

func TestRoleRules(t *testing.T) {
	assert.True(t, RoleLecturer.Administrative())
	assert.False(t, RoleLecturer.Deletable())
	assert.False(t, RoleStaff.Administrative())
	assert.True(t, RoleStaff.Deletable())
	assert.False(t, Role(7).Valid())
	assert.Equal(t, "staff", RoleStaff.String())
}
