package users_test

import (
	"fmt"
	"testing"

	"timeline-app/internal/domain/users"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMakeUsername(t *testing.T) {
	cases := map[string]string{
		"John Doe":        "john-doe",
		"  Spaced  Out  ": "spaced-out",
		"Ünïcode Náme!":   "ncode-nme",
		"---":             "user",
		"":                "user",
		"already-fine":    "already-fine",
	}
	for in, want := range cases {
		assert.Equal(t, want, users.MakeUsername(in), "input %q", in)
	}
}

func TestEnsureUniqueUsername(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:usernametest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))

	got, err := users.EnsureUniqueUsername(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	for i, name := range []string{"alice", "alice-2"} {
		u := users.User{
			Name:         name,
			Username:     name,
			Email:        fmt.Sprintf("%d@example.com", i),
			AuthProvider: "local",
		}
		require.NoError(t, db.Create(&u).Error)
	}

	got, err = users.EnsureUniqueUsername(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice-3", got)
}

func TestEnsureUniqueUsernameNilDB(t *testing.T) {
	_, err := users.EnsureUniqueUsername(nil, "alice")
	assert.Error(t, err)
}
