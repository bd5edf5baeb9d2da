package models_test

import (
	"testing"

	"restaurant-ordering-api/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumber(t *testing.T) {
	o := &models.Order{ID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"}
	assert.Equal(t, "ORD-567890", o.Number())

	short := &models.Order{ID: "ab12"}
	assert.Equal(t, "ORD-AB12", short.Number())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range models.StatusPipeline {
		assert.True(t, s.Valid(), string(s))
	}
	assert.True(t, models.StatusCancelled.Valid())
	assert.False(t, models.OrderStatus("Teleported").Valid())
	assert.False(t, models.OrderStatus("pending").Valid(), "statuses are case sensitive")
	assert.False(t, models.OrderStatus("").Valid())
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.IsTerminal())
	assert.True(t, models.StatusCancelled.IsTerminal())
	for _, s := range models.ActiveStatuses {
		assert.False(t, s.IsTerminal(), string(s))
	}
}
