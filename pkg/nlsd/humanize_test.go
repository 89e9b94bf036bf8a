package nlsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeSimple(t *testing.T) {
	assert.Equal(t, "access event", Humanize("AccessEvent"))
	assert.Equal(t, "access event", Humanize("access_event"))
}

func TestHumanizePreservesAcronymRuns(t *testing.T) {
	assert.Equal(t, "user id", Humanize("UserID"))
	assert.Equal(t, "http server", Humanize("HTTPServer"))
	assert.Equal(t, "id", Humanize("ID"))
}

func TestDehumanizeNormalizesToSnakeCase(t *testing.T) {
	assert.Equal(t, "access_event", Dehumanize("Access   Event"))
}

func TestMatchesField(t *testing.T) {
	assert.True(t, MatchesField("user id", "UserID"))
	assert.True(t, MatchesField("  User   ID  ", "UserID"))
	assert.False(t, MatchesField("username", "UserID"))
}
