package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation_AccumulatesProblems(t *testing.T) {
	err := Validation("generate", []string{"output_path is required", "framework is required"})

	assert.Equal(t, "generate: validation failed: output_path is required; framework is required", err.Error())
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, []string{"output_path is required", "framework is required"}, ProblemsOf(err))
}

func TestKindOf_Wrapped(t *testing.T) {
	base := FileSystem("emit", "app/page.tsx", errors.New("permission denied"))
	wrapped := fmt.Errorf("pipeline: %w", base)

	assert.Equal(t, KindFileSystem, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindFileSystem))
	assert.Contains(t, wrapped.Error(), "app/page.tsx: permission denied")
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindNone, KindOf(nil))
	assert.False(t, Is(nil, KindInternal))
}

func TestError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := New(KindFileSystem, "write", cause)
	require.ErrorIs(t, err, cause)
}

func TestProblemsOf_PlainError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, ProblemsOf(errors.New("boom")))
	assert.Nil(t, ProblemsOf(nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "no problems", Format(nil))
	out := Format([]string{"a", "b"})
	assert.Equal(t, "2 problem(s):\n  - a\n  - b\n", out)
}

func TestCategorize(t *testing.T) {
	groups := Categorize([]error{
		Validation("x", []string{"bad name"}),
		Newf(KindUnsupportedFramework, "x", "framework %q", "ember"),
		errors.New("boom"),
		nil,
		Validation("y", []string{"missing output_path"}),
	})

	assert.Len(t, groups[KindValidation], 2)
	assert.Len(t, groups[KindUnsupportedFramework], 1)
	assert.Len(t, groups[KindInternal], 1)
	assert.Equal(t, []Kind{KindInternal, KindUnsupportedFramework, KindValidation}, Kinds(groups))
}
