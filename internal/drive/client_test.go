package drive

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/joe5h/tally/internal/common"
)

func TestClassifyError(t *testing.T) {
	authErr := classifyError(&googleapi.Error{Code: http.StatusUnauthorized})
	assert.ErrorIs(t, authErr, common.ErrDriveAuth)
	var retryable *common.RetryableError
	require.ErrorAs(t, authErr, &retryable)
	assert.False(t, retryable.Retryable)

	rateErr := classifyError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, rateErr, common.ErrDriveRateLimit)

	serverErr := classifyError(&googleapi.Error{Code: http.StatusInternalServerError})
	assert.NotErrorIs(t, serverErr, common.ErrDriveAuth)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classifyError(plain))

	wrapped := fmt.Errorf("call failed: %w", &googleapi.Error{Code: http.StatusForbidden})
	assert.ErrorIs(t, classifyError(wrapped), common.ErrDriveAuth)
}

func TestMimeTypeQuery(t *testing.T) {
	q := mimeTypeQuery()
	assert.Contains(t, q, "application/pdf")
	assert.Contains(t, q, " or ")
}

func TestTokenSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestLoadToken_Missing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
