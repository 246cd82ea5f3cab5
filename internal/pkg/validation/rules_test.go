package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("jane.doe@campus.edu"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("jane@campus"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret123"))
	assert.False(t, ValidPassword("short"))
}

func TestStudentIDPattern(t *testing.T) {
	assert.True(t, StudentID.MatchString("20231234"))
	assert.False(t, StudentID.MatchString("2023-1234"))
}
