package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTickers(t *testing.T) {
	assert.Equal(t, []string{"PETR4.SA", "VALE3.SA", "ITUB4.SA"}, splitTickers([]string{"PETR4.SA", " VALE3.SA ITUB4.SA", ""}))
	assert.Nil(t, splitTickers(nil))
}
