package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	assert.Equal(t, "cov_1().s[3]++", Counter("cov_1", StatementRef(3)))
	assert.Equal(t, "cov_1().f[0]++", Counter("cov_1", FunctionRef(0)))
	assert.Equal(t, "cov_1().b[2][1]++", Counter("cov_1", BranchRef(2, 1)))
	assert.Equal(t, "cov_1().truthy(2, 1, ", truthyOpen("cov_1", 2, 1))
}

func TestAccessorFor(t *testing.T) {
	a := AccessorFor("src/a.js", "")
	assert.Equal(t, a, AccessorFor("src/a.js", ""))
	assert.NotEqual(t, a, AccessorFor("src/b.js", ""))
	assert.Regexp(t, `^cov_[0-9a-f]{10}$`, a)
}

func TestIsInjectedCounterExpression(t *testing.T) {
	const accessor = "cov_abc"

	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "statement counter", code: "cov_abc().s[1]++;", want: true},
		{name: "function counter", code: "cov_abc().f[0]++;", want: true},
		{name: "branch counter", code: "cov_abc().b[0][1]++;", want: true},
		{name: "other accessor", code: "other().s[1]++;", want: false},
		{name: "plain object", code: "cov_abc.s[1]++;", want: false},
		{name: "decrement", code: "cov_abc().s[1]--;", want: false},
		{name: "prefix increment", code: "++cov_abc().s[1];", want: false},
		{name: "branch without path", code: "cov_abc().b[1]++;", want: false},
		{name: "statement with path", code: "cov_abc().s[1][0]++;", want: false},
		{name: "unknown array", code: "cov_abc().x[1]++;", want: false},
		{name: "computed index", code: "cov_abc().s[i]++;", want: false},
		{name: "accessor with arguments", code: "cov_abc(1).s[1]++;", want: false},
		{name: "user counter", code: "counts.s[1]++;", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseJS(t, tt.code)
			stmt := findKind(root, KindExpressionStatement)

			assert.Equal(t, tt.want, IsInjectedCounterExpression(firstNamedChild(stmt), []byte(tt.code), accessor))
			assert.Equal(t, tt.want, IsInjectedCounterStatement(stmt, []byte(tt.code), accessor))
		})
	}
}

func TestIsInjectedSequence(t *testing.T) {
	const accessor = "cov_abc"

	code := "x = (cov_abc().b[0][0]++, a) && (y(), b);"
	root := parseJS(t, code)
	logical := findKind(root, KindBinary)

	assert.True(t, IsInjectedSequence(logical.ChildByFieldName("left"), []byte(code), accessor))
	assert.False(t, IsInjectedSequence(logical.ChildByFieldName("right"), []byte(code), accessor))
	assert.False(t, IsInjectedSequence(logical, []byte(code), accessor))
}
