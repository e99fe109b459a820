package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("offer must be created via NewOffer")

	t.Run("ConstructedGuardPasses", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("ZeroValueReturnsCallerError", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("ZeroValueFallsBackToDefaultError", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_DefaultErrorMessage(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor",
		guard.ErrDefaultConstructorGuard.Error())
}

// Demonstrates the intended embedding pattern: a value object carries the
// guard privately and its Validate surfaces the object's own sentinel.
func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errOfferNotConstructed := errors.New("offer must be created via newOffer")

	type offer struct {
		reference string
		guard     guard.ConstructorGuard
	}

	newOffer := func(reference string) (offer, error) {
		if reference == "" {
			return offer{}, errors.New("reference is required")
		}
		return offer{reference: reference, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("ConstructedOfferValidates", func(t *testing.T) {
		o, err := newOffer("A-100")

		require.NoError(t, err)
		require.NoError(t, o.guard.Validate(errOfferNotConstructed))
		assert.Equal(t, "A-100", o.reference)
	})

	t.Run("LiteralOfferIsRejected", func(t *testing.T) {
		o := offer{reference: "A-100"}

		err := o.guard.Validate(errOfferNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errOfferNotConstructed, err)
	})

	t.Run("ConstructorStillEnforcesItsOwnRules", func(t *testing.T) {
		_, err := newOffer("")
		require.Error(t, err)
	})
}

// Guards are read-only after construction, so concurrent validation needs no
// synchronization.
func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	sentinel := errors.New("not constructed")

	done := make(chan struct{})
	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 500 {
				assert.NoError(t, g.Validate(sentinel))
			}
		}()
	}
	for range 50 {
		<-done
	}
}
