package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	var v struct {
		A FlexibleID `json:"a"`
		B FlexibleID `json:"b"`
		C FlexibleID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1024, "b": "inv-77", "c": null}`), &v))
	assert.Equal(t, FlexibleID("1024"), v.A)
	assert.Equal(t, FlexibleID("inv-77"), v.B)
	assert.Equal(t, FlexibleID(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
}
