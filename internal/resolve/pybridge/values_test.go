package pybridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestTruthy(t *testing.T) {
	tests := map[string]bool{
		`null`:          false,
		`false`:         false,
		`true`:          true,
		`0`:             false,
		`0.5`:           true,
		`""`:            false,
		`"x"`:           true,
		`[]`:            false,
		`[1]`:           true,
		`{}`:            false,
		`{"$handle":3}`: true,
	}
	for raw, want := range tests {
		assert.Equal(t, want, truthy(gjson.Parse(raw)), raw)
	}
}

func TestElements(t *testing.T) {
	assert.Len(t, elements(gjson.Parse(`[1,2,3]`)), 3)
	assert.Len(t, elements(gjson.Parse(`{"1":"a","2":"b"}`)), 2)
	assert.Len(t, elements(gjson.Parse(`{"$handle":3}`)), 1)
	assert.Empty(t, elements(gjson.Parse(`null`)))

	assert.Equal(t, []string{"b", "a"}, stringsOf(gjson.Parse(`{"2":"b","1":"a"}`)))
}

func TestHandleOf(t *testing.T) {
	h, isHandle := handleOf(gjson.Parse(`{"$handle":42}`))
	assert.True(t, isHandle)
	assert.Equal(t, int64(42), h)

	_, isHandle = handleOf(gjson.Parse(`{"$handle":42,"other":1}`))
	assert.False(t, isHandle)
	_, isHandle = handleOf(gjson.Parse(`{"$handle":"42"}`))
	assert.False(t, isHandle)
}

func TestStringMapOf(t *testing.T) {
	got := stringMapOf(gjson.Parse(`{"timelineFrameRate":"24","superScale":1}`))
	assert.Equal(t, map[string]string{"timelineFrameRate": "24", "superScale": "1"}, got)
	assert.Empty(t, stringMapOf(gjson.Parse(`null`)))
}
