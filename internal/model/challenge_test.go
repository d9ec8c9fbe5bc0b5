package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallenge_HabitFor(t *testing.T) {
	habit := "h1"
	c := &Challenge{ChallengerID: "ana", OpponentID: "bob", ChallengerHabitID: &habit}

	assert.Equal(t, "h1", c.HabitFor("ana"))
	assert.Equal(t, "", c.HabitFor("bob"), "pending opponent has no habit")
	assert.Equal(t, "", c.HabitFor("carl"))

	c.ChallengerHabitID = nil
	assert.Equal(t, "", c.HabitFor("ana"), "deleted habit")
}
