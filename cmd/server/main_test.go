package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_InvalidConfigExitsNonZero(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	assert.Equal(t, 1, run())
}
