package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Method
		wantErr bool
	}{
		{raw: "GET", want: Get},
		{raw: "post", want: Post},
		{raw: " Patch ", want: Patch},
		{raw: "delete", want: Delete},
		{raw: "PUT", want: Put},
		{raw: "HEAD", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("post, GET,patch,get")
	require.NoError(t, err)
	assert.Equal(t, []Method{Post, Get, Patch, Get}, got)

	got, err = ParseList("POST,,PATCH")
	require.NoError(t, err)
	assert.Equal(t, []Method{Post, "", Patch}, got)

	got, err = ParseList("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseList("POST,TRACE")
	assert.Error(t, err)
}

func TestMethod_NextPrev(t *testing.T) {
	assert.Equal(t, Post, Get.Next())
	assert.Equal(t, Get, Patch.Next())
	assert.Equal(t, Get, Method("").Next())
	assert.Equal(t, Patch, Get.Prev())
	assert.Equal(t, Patch, Method("").Prev())

	m := Get
	for range All() {
		m = m.Next()
	}
	assert.Equal(t, Get, m, "cycling through every verb returns to the start")
}
