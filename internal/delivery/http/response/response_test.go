package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "credo/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSuccessWithWarning_MetaCarriesWarning(t *testing.T) {
	c, rec := newTestContext(t)

	err := SuccessWithWarning(c, http.StatusCreated, map[string]string{"username": "alice"},
		"verification email could not be sent")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body domainerrors.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, "verification email could not be sent", body.Meta.Warning)
}

func TestSuccess_OmitsEmptyWarning(t *testing.T) {
	c, rec := newTestContext(t)

	err := Success(c, http.StatusOK, map[string]string{"username": "alice"})
	require.NoError(t, err)
	assert.NotContains(t, rec.Body.String(), "warning")
}

func TestError_StripsDetailsForSensitiveStatuses(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectDetails bool
	}{
		{name: "bad request keeps details", statusCode: http.StatusBadRequest, expectDetails: true},
		{name: "unauthorized strips details", statusCode: http.StatusUnauthorized, expectDetails: false},
		{name: "forbidden strips details", statusCode: http.StatusForbidden, expectDetails: false},
		{name: "internal error strips details", statusCode: http.StatusInternalServerError, expectDetails: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			err := Error(c, tc.statusCode, "SOME_CODE", "something went wrong", "sensitive detail")
			require.NoError(t, err)
			assert.Equal(t, tc.statusCode, rec.Code)

			if tc.expectDetails {
				assert.Contains(t, rec.Body.String(), "sensitive detail")
			} else {
				assert.NotContains(t, rec.Body.String(), "sensitive detail")
			}
		})
	}
}

func TestHandleAppError_RendersDomainError(t *testing.T) {
	c, rec := newTestContext(t)

	err := HandleAppError(c, errors.Wrap(domainerrors.ErrUserAlreadyExists, "duplicate registration"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body domainerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Error.Code)
}

func TestHandleAppError_PassesThroughUnknownErrors(t *testing.T) {
	c, rec := newTestContext(t)

	err := HandleAppError(c, errors.New("something unexpected"))
	require.Error(t, err)
	assert.Empty(t, rec.Body.String())
}
