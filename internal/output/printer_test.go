package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
	"ctpostman/internal/router"
	"ctpostman/internal/step"
)

func TestPrinter_StepLines(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.StepStart(2, 4, step.Verify, method.Get)
	p.StepSuccess(step.Verify, "found")
	p.StepFailure(step.Update, "ID does not match")
	p.Echo("code", "ZT88QP")

	out := buf.String()
	assert.Contains(t, out, "[2/4] VERIFY  GET")
	assert.Contains(t, out, "✓ VERIFY: found")
	assert.Contains(t, out, "✗ UPDATE: ID does not match")
	assert.Contains(t, out, "code: ZT88QP")
}

func TestPrinter_WizardHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.WizardHeader(router.NewRouter().Rules())
	p.WizardComplete()

	out := buf.String()
	assert.Contains(t, out, "CREATE POST → VERIFY GET → UPDATE PATCH → REDIRECT GET")
	assert.Contains(t, out, "WIZARD COMPLETE")
}

func TestPrinter_Users(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.Users(api.Listing{
		Message: "Well done",
		Users: []api.User{
			{ID: "u1", Username: "demo", Code: "ZT88QP", Number5: "5"},
			{ID: "u2", Username: "other", Code: "QQ11AA", Number5: "7"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Well done")
	assert.Contains(t, out, "USERNAME")
	for _, want := range []string{"u1", "demo", "ZT88QP", "u2", "other", "QQ11AA"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "u1"), strings.Index(out, "u2"), "rows keep listing order")
}

func TestPrinter_UsersEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.Users(api.Listing{})

	assert.Contains(t, buf.String(), "No users.")
}

func TestPrinter_Routes(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.Routes(router.NewRouter().Rules())

	out := buf.String()
	assert.Contains(t, out, "PATCH")
	assert.Contains(t, out, "username, password")
	assert.Contains(t, out, "DONE")
}

func TestPrinter_SetColorOff(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)
	p.SetColor(false)

	p.Error("boom %d", 1)
	p.Success("ok")
	p.Info("note")
	p.Raw("raw\n")

	assert.Equal(t, "boom 1\nok\nnote\nraw\n", buf.String())
}
