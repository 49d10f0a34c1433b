package guard_test

import (
	"errors"
	"sync"
	"testing"

	"shipping/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLabelNotConstructed = errors.New("label must be created via NewLabel")

type label struct {
	tracking string
	guard    guard.ConstructorGuard
}

func newLabel(tracking string) (label, error) {
	if tracking == "" {
		return label{}, errors.New("tracking number is required")
	}
	return label{tracking: tracking, guard: guard.NewConstructorGuard()}, nil
}

func (l label) Validate() error {
	return l.guard.Validate(errLabelNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("run not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		require.ErrorIs(t, g.Validate(nil), guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
	})
}

func TestConstructorGuard_EmbeddedUsage(t *testing.T) {
	t.Run("constructed_value_is_valid", func(t *testing.T) {
		l, err := newLabel("MP-123")
		require.NoError(t, err)

		require.NoError(t, l.Validate())
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var l label

		require.ErrorIs(t, l.Validate(), errLabelNotConstructed)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		l, err := newLabel("")
		require.Error(t, err)

		require.ErrorIs(t, l.Validate(), errLabelNotConstructed)
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		l, _ := newLabel("MP-123")
		copied := l

		require.NoError(t, copied.Validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}
