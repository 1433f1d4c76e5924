package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckbox_Unmarshal(t *testing.T) {
	cases := map[string]bool{
		`{"v":true}`:  true,
		`{"v":false}`: false,
		`{"v":"on"}`:  true,
		`{"v":"ON"}`:  true,
		`{"v":"1"}`:   true,
		`{"v":"off"}`: false,
		`{"v":""}`:    false,
		`{"v":1}`:     true,
		`{"v":0}`:     false,
		`{"v":null}`:  false,
		`{}`:          false,
	}
	for in, want := range cases {
		var v struct {
			V Checkbox `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(in), &v), in)
		assert.Equal(t, want, v.V.Bool(), in)
	}

	var v struct {
		V Checkbox `json:"v"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"v":[1]}`), &v))
}
