package ecolocator_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/ecolocator"
	"github.com/stretchr/testify/assert"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	t.Run("formats single point with all fields", func(t *testing.T) {
		t.Parallel()

		entry := &ecolocator.DirectoryEntry{
			City: "rosario",
			Zone: "Rosario",
			Points: []ecolocator.DropOffPoint{
				{Name: "Club Uno", Address: "Calle 1", Details: "Sábados", Phone: "555-0101"},
			},
		}

		result := ecolocator.FormatEntry(entry)

		expected := "Puntos de entrega en Rosario\n" +
			"\n" +
			"1. Club Uno\n" +
			"   Dirección: Calle 1\n" +
			"   Detalles: Sábados\n" +
			"   Teléfono: 555-0101\n" +
			"\n" +
			ecolocator.Reminder
		assert.Equal(t, expected, result)
	})

	t.Run("omits absent details and phone", func(t *testing.T) {
		t.Parallel()

		entry := &ecolocator.DirectoryEntry{
			Zone:   "Rosario",
			Points: []ecolocator.DropOffPoint{{Name: "Club Uno", Address: "Calle 1"}},
		}

		result := ecolocator.FormatEntry(entry)

		assert.NotContains(t, result, "Detalles:")
		assert.NotContains(t, result, "Teléfono:")
	})

	t.Run("keeps stored order", func(t *testing.T) {
		t.Parallel()

		entry := &ecolocator.DirectoryEntry{
			Zone: "Rosario",
			Points: []ecolocator.DropOffPoint{
				{Name: "Zeta", Address: "Calle 9"},
				{Name: "Alfa", Address: "Calle 1"},
			},
		}

		result := ecolocator.FormatEntry(entry)

		assert.Less(t, strings.Index(result, "1. Zeta"), strings.Index(result, "2. Alfa"))
	})

	t.Run("always ends with the reminder", func(t *testing.T) {
		t.Parallel()

		entry := &ecolocator.DirectoryEntry{
			Zone:   "Rosario",
			Points: []ecolocator.DropOffPoint{{Name: "Club Uno", Address: "Calle 1"}},
		}

		result := ecolocator.FormatEntry(entry)

		assert.True(t, strings.HasSuffix(result, ecolocator.Reminder))
	})
}

func TestDefaultMessage(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, strings.TrimSpace(ecolocator.DefaultMessage))
	assert.Contains(t, ecolocator.DefaultMessage, "municipalidad")
	assert.Contains(t, ecolocator.DefaultMessage, "mapas")
	assert.Contains(t, ecolocator.DefaultMessage, "comunitarios")
	assert.NotContains(t, ecolocator.DefaultMessage, "Dirección:")
}
