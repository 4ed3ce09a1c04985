package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_IsValid(t *testing.T) {
	for _, s := range All() {
		assert.True(t, s.IsValid(), "step %q should be valid", s)
	}
	assert.False(t, Step("").IsValid())
	assert.False(t, Step("delete").IsValid())
}

func TestStep_IsTerminal(t *testing.T) {
	assert.True(t, Done.IsTerminal())
	assert.False(t, Create.IsTerminal())
	assert.False(t, Redirect.IsTerminal())
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Step
		wantErr bool
	}{
		{raw: "create", want: Create},
		{raw: "VERIFY", want: Verify},
		{raw: "  Update ", want: Update},
		{raw: "redirect", want: Redirect},
		{raw: "done", want: Done},
		{raw: "bogus", wantErr: true},
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

func TestStep_Title(t *testing.T) {
	assert.Equal(t, "CREATE", Create.Title())
	assert.Equal(t, "REDIRECT", Redirect.Title())
}

func TestField_Label(t *testing.T) {
	assert.Equal(t, "user ID", FieldID.Label())
	assert.Equal(t, "code", FieldCode.Label())
}

func TestForm(t *testing.T) {
	var empty Form
	assert.Equal(t, "", empty.Get(FieldCode))

	f := Form{FieldCode: "AB12CD"}
	clone := f.Clone()
	clone[FieldCode] = "changed"

	assert.Equal(t, "AB12CD", f.Get(FieldCode))
	assert.Equal(t, "changed", clone.Get(FieldCode))
}
