package app

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestModeFollowsEnvironment(t *testing.T) {
	// runs after the environment is restored
	t.Cleanup(RefreshTestMode)

	t.Setenv(TestModeEnv, "true")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(TestModeEnv, "0")
	RefreshTestMode()
	assert.False(t, InTestMode())
}

func TestExportMimeTypesRegistered(t *testing.T) {
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mime.TypeByExtension(".xlsx"))
	assert.NotEmpty(t, mime.TypeByExtension(".csv"))
	assert.NotEmpty(t, mime.TypeByExtension(".pdf"))
}
