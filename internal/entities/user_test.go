package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	user := User{ID: "id-1", Username: "alice", Email: "a@x.com", PasswordHash: "$2a$04$secret"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$04$secret")
}

func TestUser_View(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &User{
		ID:           "id-1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now.Add(time.Minute),
	}

	view := user.View()

	assert.Equal(t, UserView{
		ID:        "id-1",
		Username:  "alice",
		Email:     "a@x.com",
		CreatedAt: now,
		UpdatedAt: now.Add(time.Minute),
	}, view)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.ElementsMatch(t, []string{"id", "username", "email", "created_at", "updated_at"}, keys(fields))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
