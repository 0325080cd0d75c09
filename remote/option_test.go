package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestOption_Accessors(t *testing.T) {
	some := Some("rice")
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "rice", v)
	assert.Equal(t, "rice", some.OrElse("wheat"))
	require.NotNil(t, some.Ptr())

	none := None[string]()
	assert.True(t, none.IsNone())
	assert.Equal(t, "wheat", none.OrElse("wheat"))
	assert.Nil(t, none.Ptr())

	var zero Option[int]
	assert.True(t, zero.IsNone(), "zero value is absent")
	assert.Equal(t, None[int](), FromPtr[int](nil))
}

// An empty present string must stay distinguishable from an absent one.
func TestOption_EmptyIsNotAbsent(t *testing.T) {
	q := ExpertQuery{ID: 7, Question: "Leaf curl on chilli?", Response: Some(""), Attachment: None[string]()}

	data, err := json.Marshal(q)
	require.NoError(t, err)
	var fromJSON ExpertQuery
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.True(t, fromJSON.Response.IsSome())
	assert.True(t, fromJSON.Attachment.IsNone())

	packed, err := msgpack.Marshal(q)
	require.NoError(t, err)
	var fromPack ExpertQuery
	require.NoError(t, msgpack.Unmarshal(packed, &fromPack))
	assert.True(t, fromPack.Response.IsSome())
	assert.False(t, fromPack.Pending())
	assert.True(t, fromPack.Attachment.IsNone())
}
