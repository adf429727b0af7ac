package insight_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/insight"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := insight.Errorf(insight.EFETCH, "HTTP %d for %s", 500, "https://example.com")

	assert.Equal(t, insight.EFETCH, insight.ErrorCode(err))
	assert.Equal(t, "HTTP 500 for https://example.com", insight.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch https://example.com: %w", insight.Errorf(insight.EFETCH, "timeout"))

	assert.Equal(t, insight.EFETCH, insight.ErrorCode(err))
	assert.Equal(t, "timeout", insight.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, insight.EINTERNAL, insight.ErrorCode(err))
	assert.Equal(t, "Internal error.", insight.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, insight.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, insight.ErrorMessage(nil))
}
