package verr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miwamasa/xslt-validation/verr"
)

func TestDiagnosticError(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		diag *verr.Diagnostic
		want string
	}{
		"without path": {
			diag: verr.New(verr.KindInputSyntax, "bad xml: %s", "eof"),
			want: "bad xml: eof",
		},
		"with path": {
			diag: verr.NewAt(verr.KindSubsetViolation, "/stylesheet/template", "disallowed element"),
			want: "disallowed element at /stylesheet/template",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.diag.Error())
		})
	}
}

func TestDiagnosticsError(t *testing.T) {
	t.Parallel()

	var empty verr.Diagnostics
	assert.Equal(t, "no errors", empty.Error())

	single := verr.Diagnostics{verr.New(verr.KindInternal, "boom")}
	assert.Equal(t, "boom", single.Error())

	multi := verr.Diagnostics{
		verr.New(verr.KindInternal, "first"),
		verr.New(verr.KindInternal, "second"),
	}
	assert.Equal(t, "first (and 1 more error(s))", multi.Error())
	assert.Equal(t, []string{"first", "second"}, multi.Messages())
}
