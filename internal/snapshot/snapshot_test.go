package snapshot

import (
	"context"
	"testing"

	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	"github.com/angelmondragon/coffee-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func sampleState(t *testing.T) (*cart.Cart, *orders.Repository) {
	t.Helper()
	c := cart.New([]cart.Item{{ID: "latte", Quantity: 2}, {ID: "cubano", Quantity: 1}})
	repo, err := orders.NewRepository([]orders.Order{
		{
			ID:    1,
			Items: []cart.Item{{ID: "expresso-tradicional", Quantity: 3}},
			Address: orders.Address{
				CEP: "04538133", Street: "Av. Brigadeiro Faria Lima", Number: "3477",
				FullAddress: "18º andar", Neighborhood: "Itaim Bibi", City: "São Paulo", State: "SP",
			},
			PaymentMethod: enums.PaymentMethodCredit,
		},
		{
			ID:    2,
			Items: []cart.Item{{ID: "irlandes", Quantity: 1}},
			Address: orders.Address{
				CEP: "01310100", Street: "Av. Paulista", Number: "1000",
				Neighborhood: "Bela Vista", City: "São Paulo", State: "SP",
			},
			PaymentMethod: enums.PaymentMethodCash,
		},
	})
	require.NoError(t, err)
	return c, repo
}

func assertRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, empty, "fresh store should report no snapshot")

	c, repo := sampleState(t)
	require.NoError(t, store.Save(ctx, Capture(c, repo)))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	restoredCart, restoredRepo, err := loaded.Restore()
	require.NoError(t, err)
	assert.Equal(t, c.Items(), restoredCart.Items())
	assert.Equal(t, repo.List(), restoredRepo.List())
	assert.Equal(t, 3, restoredRepo.NextID())

	c.Clear()
	require.NoError(t, store.Save(ctx, Capture(c, repo)))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Cart)
	assert.Len(t, loaded.Orders, 2)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	assertRoundTrip(t, store)
	assert.Equal(t, "memory", store.Name())
	assert.NoError(t, store.Ping(context.Background()))
}

func TestEncodeWritesEmptyCollections(t *testing.T) {
	data, err := Encode(Snapshot{Version: CurrentVersion})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"cart":[],"orders":[]}`, string(data))
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"version":`))
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	snap := Snapshot{
		Version: 7,
		Cart:    []cart.Item{{ID: "latte", Quantity: 1}, {ID: "latte", Quantity: 0}},
		Orders: []orders.Order{
			{ID: 2, Items: []cart.Item{{ID: "a", Quantity: 1}}, PaymentMethod: enums.PaymentMethodCash},
			{ID: 2, PaymentMethod: "pix"},
		},
	}
	err := snap.Validate()
	require.Error(t, err)
	// version, duplicate id, zero quantity, non-increasing id, empty order, bad payment method
	assert.Len(t, multierr.Errors(err), 6)
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	snap := Snapshot{Version: CurrentVersion, Cart: []cart.Item{{ID: "", Quantity: 1}}}
	_, _, err := snap.Restore()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Len(t, details["problems"], 1)
}
