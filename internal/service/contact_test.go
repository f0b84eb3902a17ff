package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalops/internal/domain"
)

func TestContacts(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.contacts.Add(ctx(), domain.Contact{Name: "  Dr. Mehta ", Role: "Chief Medical Officer", Phone: "+919820000001"})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mehta", c.Name)
	assert.NotEmpty(t, c.ID)

	_, err = env.contacts.Add(ctx(), domain.Contact{Name: "No Phone", Role: "Nurse"})
	assert.ErrorIs(t, err, ErrInvalid)

	list, err := env.contacts.List(ctx())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.contacts.Delete(ctx(), c.ID))
	assert.ErrorIs(t, env.contacts.Delete(ctx(), c.ID), ErrNotFound)
}
