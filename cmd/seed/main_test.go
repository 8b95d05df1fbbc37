package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseStoresCSV_Latin1WithHeader(t *testing.T) {
	utf8 := "name;address;postcode;city;siren;siret\n" +
		"Épicerie du Marché;12 rue de la Paix;75002;Paris;123456789;12345678900012\n" +
		"Supérette Nord ; 3 place Carnot;59000;Lille;987654321;98765432100034\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, err := parseStoresCSV(bytes.NewBufferString(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Épicerie du Marché", rows[0].Name)
	assert.Equal(t, "75002", rows[0].Postcode)
	assert.Equal(t, "12345678900012", rows[0].Siret)
	assert.Equal(t, "Supérette Nord", rows[1].Name)
	assert.Equal(t, "3 place Carnot", rows[1].Address)
}

func TestParseStoresCSV_NoHeader(t *testing.T) {
	rows, err := parseStoresCSV(bytes.NewBufferString("A;;;;111111111;11111111100011\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Name)
	assert.Empty(t, rows[0].City)
}

func TestParseStoresCSV_WrongFieldCount(t *testing.T) {
	_, err := parseStoresCSV(bytes.NewBufferString("A;B;C\n"))
	assert.Error(t, err)
}
