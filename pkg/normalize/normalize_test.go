package normalize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmardones/despensa/pkg/normalize"
)

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Tomate Cherry", want: "tomate cherry"},
		{name: "trims", in: "  leche entera  ", want: "leche entera"},
		{name: "collapses runs", in: "pan   de\t\tmolde", want: "pan de molde"},
		{name: "replaces slash", in: "aceite oliva/maravilla", want: "aceite oliva maravilla"},
		{name: "replaces backslash", in: `queso\gauda`, want: "queso gauda"},
		{name: "slash surrounded by spaces", in: "sal / pimienta", want: "sal pimienta"},
		{name: "already normalized", in: "arroz grado 1", want: "arroz grado 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalize.Name(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "///", " / \\ "} {
		_, err := normalize.Name(in)
		assert.ErrorIs(t, err, normalize.ErrInvalidName, "input %q", in)
	}
}

func TestName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Tomate Cherry", "  PAN   AMASADO ", "aceite/oliva extra",
		"Pizza congelada", "café de grano \\ molido",
	}

	for _, in := range inputs {
		once, err := normalize.Name(in)
		require.NoError(t, err)
		twice, err := normalize.Name(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)

		assert.NotContains(t, once, "/")
		assert.NotContains(t, once, "\\")
		assert.NotContains(t, once, "  ")
		assert.Equal(t, strings.TrimSpace(once), once)
	}
}

func TestDerivedIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "prepared_pizza_congelada", normalize.PreparedFoodID("pizza congelada"))
	assert.Equal(t, "unknown_snack_misterioso_x", normalize.UnknownIngredientID("snack misterioso x"))
	assert.Equal(t, "unknown_prepared_guiso_casero", normalize.UnknownPreparedID("guiso casero"))
}
