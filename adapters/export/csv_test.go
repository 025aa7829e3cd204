package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEmptyInput(t *testing.T) {
	data, err := Marshal(nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, data)

	data, err = Marshal([]Record{}, nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, data)
}

func TestMarshalDefaultColumns(t *testing.T) {
	records := []Record{
		{"id": 1, "name": "A"},
		{"id": 2, "name": "B,C"},
	}

	data, err := Marshal(records, nil)
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	assert.Equal(t, "id,name\n1,A\n2,\"B,C\"", body)
}

func TestMarshalBOMPrefix(t *testing.T) {
	data, err := Marshal([]Record{{"a": 1}}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestMarshalNumberFormatting(t *testing.T) {
	records := []Record{{
		"pi":    3.14159,
		"count": 5,
		"whole": 5.0,
		"rate":  10.5,
	}}

	data, err := Marshal(records, []Column{
		{Key: "pi", Header: "pi"},
		{Key: "count", Header: "count"},
		{Key: "whole", Header: "whole"},
		{Key: "rate", Header: "rate"},
	})
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "3.14,5,5,10.50", lines[1])
}

func TestMarshalQuoting(t *testing.T) {
	records := []Record{{
		"vendor": "Acme, Inc",
		"note":   `He said "hi"`,
		"multi":  "line1\nline2",
		"plain":  "ok",
	}}

	data, err := Marshal(records, []Column{
		{Key: "vendor", Header: "vendor"},
		{Key: "note", Header: "note"},
		{Key: "multi", Header: "multi"},
		{Key: "plain", Header: "plain"},
	})
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	row := strings.SplitN(body, "\n", 2)[1]
	assert.Equal(t, `"Acme, Inc","He said ""hi""","line1`+"\n"+`line2",ok`, row)
}

func TestMarshalColumnMappingSelectsAndOrders(t *testing.T) {
	records := []Record{{"id": 7, "qty": 10.5, "extra": "x"}}

	data, err := Marshal(records, []Column{
		{Key: "qty", Header: "Quantity"},
		{Key: "id", Header: "ID"},
	})
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	lines := strings.Split(body, "\n")
	assert.Equal(t, "Quantity,ID", lines[0])
	assert.Equal(t, "10.50,7", lines[1])
	assert.NotContains(t, body, "extra")
}

func TestMarshalMissingAndNilValues(t *testing.T) {
	records := []Record{
		{"a": "x", "b": nil},
		{"a": "y"},
	}

	data, err := Marshal(records, []Column{
		{Key: "a", Header: "a"},
		{Key: "b", Header: "b"},
	})
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	lines := strings.Split(body, "\n")
	assert.Equal(t, "x,", lines[1])
	assert.Equal(t, "y,", lines[2])
}

func TestMarshalRoundTrip(t *testing.T) {
	records := []Record{
		{"lot": "25K26X01", "rej": 3.14159, "vendor": "Acme, Inc"},
		{"lot": "25K26X02", "rej": 5.0, "vendor": `He said "hi"`},
	}
	columns := []Column{
		{Key: "lot", Header: "Lot No"},
		{Key: "rej", Header: "Rejection %"},
		{Key: "vendor", Header: "Vendor"},
	}

	data, err := Marshal(records, columns)
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "\uFEFF")
	parsed, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err)

	require.Len(t, parsed, 3)
	assert.Equal(t, []string{"Lot No", "Rejection %", "Vendor"}, parsed[0])
	assert.Equal(t, []string{"25K26X01", "3.14", "Acme, Inc"}, parsed[1])
	assert.Equal(t, []string{"25K26X02", "5", `He said "hi"`}, parsed[2])
}
