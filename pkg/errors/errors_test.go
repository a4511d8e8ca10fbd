package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	appErr := ErrValidation("manifest build requires at least one order row")
	assert.Equal(t, "VALIDATION_ERROR: manifest build requires at least one order row", appErr.Error())

	wrapped := appErr.Wrap(stderrors.New("row 3"))
	assert.Contains(t, wrapped.Error(), "row 3")
	assert.Equal(t, "row 3", stderrors.Unwrap(wrapped).Error())
}

func TestErrManifestNotFound(t *testing.T) {
	appErr := ErrManifestNotFound("m-42")

	assert.Equal(t, CodeManifestNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, "m-42", appErr.Details["manifestId"])
}

func TestErrValidationWithFields(t *testing.T) {
	appErr := ErrValidationWithFields("validation failed", map[string]string{
		"centerName": "is required",
	})

	assert.Equal(t, CodeValidationError, appErr.Code)
	assert.Equal(t, "is required", appErr.Details["centerName"])
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "not found",
			err:        stderrors.New("manifest not found"),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already exists",
			err:        stderrors.New("manifest m-1 already exists"),
			wantCode:   CodeConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown center type",
			err:        stderrors.New(`unknown center type "mystery"`),
			wantCode:   CodeValidationError,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid input",
			err:        stderrors.New("invalid shippingCost"),
			wantCode:   CodeValidationError,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unmapped error",
			err:        stderrors.New("write conflict during upsert"),
			wantCode:   CodeInternalError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			assert.Equal(t, tt.err, stderrors.Unwrap(appErr))
		})
	}
}

func TestMapDomainErrorPassesThroughAppErrors(t *testing.T) {
	original := ErrManifestNotFound("m-7")
	assert.Same(t, original, MapDomainError(original))

	assert.Nil(t, MapDomainError(nil))
}
