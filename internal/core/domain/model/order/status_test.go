package order_test

import (
	"fmt"
	"testing"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Shipped))
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Shipped} {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(7), order.Status(-1)} {
			err := status.Validate()

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Shipped", order.Shipped.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Ship(t *testing.T) {
	t.Run("Pending ships", func(t *testing.T) {
		next, err := order.Pending.Ship()

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, next)
	})

	t.Run("Shipped is final", func(t *testing.T) {
		_, err := order.Shipped.Ship()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Shipped is not a valid status to ship")
	})

	t.Run("Unknown cannot ship", func(t *testing.T) {
		_, err := order.Unknown.Ship()

		require.Error(t, err)
	})
}
