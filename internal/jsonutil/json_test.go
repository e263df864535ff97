package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here you go:\n{\"a\":1}\nThanks", `{"a":1}`},
		{"nested", `sure {"a":{"b":[1,2]}} done`, `{"a":{"b":[1,2]}}`},
		{"no object", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Items []string `json:"items"`
	}

	got, err := Decode[payload]("```json\n{\"name\":\"x\",\"items\":[\"a\",\"b\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, []string{"a", "b"}, got.Items)

	got, err = Decode[payload](`{"name":"y"} trailing words`)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Name)
}

func TestDecodeErrors(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	_, err := Decode[payload]("no json at all")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = Decode[payload](`{"name": }`)
	assert.Error(t, err)
}
