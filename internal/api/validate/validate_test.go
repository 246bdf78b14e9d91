package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("name", "Alice"))

	ef := Required("name", "   ")
	if assert.NotNil(t, ef) {
		assert.Equal(t, "name", ef.Field)
	}
}

func TestMinInt(t *testing.T) {
	assert.Nil(t, MinInt("amount", 1, 1))

	ef := MinInt("amount", 0, 1)
	if assert.NotNil(t, ef) {
		assert.Equal(t, "must be >= 1", ef.Msg)
	}
}

func TestErrsError(t *testing.T) {
	errs := Errs{
		{Field: "name", Msg: "required"},
		{Field: "amount", Msg: "must be >= 1"},
	}
	assert.Equal(t, "name: required; amount: must be >= 1", errs.Error())
}
