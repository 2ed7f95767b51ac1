package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAct(t *testing.T) {
	owner := Actor{ID: "u1", Role: "salon_owner"}
	stranger := Actor{ID: "u2", Role: "salon_owner"}
	customer := Actor{ID: "u3", Role: "customer"}
	admin := Actor{ID: "u4", Role: "admin"}

	owned := Resource{OwnerID: "u1"}

	assert.True(t, CanAct(owner, owned), "owner acts on own resource")
	assert.False(t, CanAct(stranger, owned), "same role but not owner")
	assert.False(t, CanAct(customer, owned))
	assert.True(t, CanAct(admin, owned), "admin acts on anything")

	roleGated := Resource{AllowedRoles: []string{"salon_owner"}}
	assert.True(t, CanAct(owner, roleGated))
	assert.True(t, CanAct(stranger, roleGated))
	assert.False(t, CanAct(customer, roleGated))
	assert.True(t, CanAct(admin, roleGated))
}

func TestOwnsOrAdmin(t *testing.T) {
	assert.True(t, OwnsOrAdmin(Actor{ID: "u1", Role: "customer"}, "u1"))
	assert.False(t, OwnsOrAdmin(Actor{ID: "u2", Role: "customer"}, "u1"))
	assert.True(t, OwnsOrAdmin(Actor{ID: "u9", Role: "admin"}, "u1"))
}
