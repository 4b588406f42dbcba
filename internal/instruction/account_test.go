package instruction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountMarshalsAsBareNumber(t *testing.T) {
	b, err := json.Marshal(AmountFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "500", string(b))

	snap := AccountSnapshot{ID: "ACC1", Balance: AmountFromInt(500), BalanceBefore: AmountFromInt(1000), Currency: "USD"}
	b, err = json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ACC1","balance":500,"balance_before":1000,"currency":"USD"}`, string(b))
}

func TestAmountUnmarshal(t *testing.T) {
	var a Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":"ACC1","balance":250,"currency":"usd"}`), &a))
	assert.Equal(t, "ACC1", a.ID)
	assert.Equal(t, "250", a.Balance.String())
	assert.Equal(t, "usd", a.Currency)
}

func TestIndexAccounts(t *testing.T) {
	a := &Account{ID: "A"}
	b1 := &Account{ID: "B", Currency: "USD"}
	b2 := &Account{ID: "B", Currency: "GBP"}

	idx := indexAccounts([]*Account{a, b1, b2})

	got, ok := idx.lookup("B")
	require.True(t, ok)
	assert.Same(t, b2, got, "last occurrence wins")
	assert.Equal(t, 1, idx.order["B"], "first occurrence keeps its position")

	_, ok = idx.lookup("missing")
	assert.False(t, ok)
}
