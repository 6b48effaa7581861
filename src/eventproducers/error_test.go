package eventproducers

import (
	"errors"
	"fmt"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

func TestSetResponse(t *testing.T) {
	t.Run("writes the encoded object", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, SetResponse(&pricing.Result{CallPrice: 1.5}, rec))

		assert.Equal(t, 200, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"call_price":1.5`)
	})

	t.Run("unencodable object leaves the response untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := SetResponse(&pricing.Result{CallPrice: math.NaN()}, rec)
		require.Error(t, err)

		assert.Empty(t, rec.Header().Get("Content-Type"))
		assert.Zero(t, rec.Body.Len())

		require.NoError(t, SetErrorResponse(InternalErrorType, 500, err, rec))
		assert.Equal(t, 500, rec.Code)
	})
}

func TestServeErrorStatus(t *testing.T) {
	errType, code := ServeErrorStatus(fmt.Errorf("evaluate: %w", pricing.NonFiniteResultErr))
	assert.Equal(t, ValidationErrorType, errType)
	assert.Equal(t, 400, code)

	errType, code = ServeErrorStatus(errors.New("disk on fire"))
	assert.Equal(t, InternalErrorType, errType)
	assert.Equal(t, 500, code)
}
