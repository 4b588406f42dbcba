package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*OAuthServer, *JWTValidator) {
	t.Helper()

	keys, err := NewKeySet()
	require.NoError(t, err)

	store, err := ParseClients("svc-a:topsecret:instructions:execute, svc-b:otherpass")
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	srv := &OAuthServer{Store: store, Keys: keys, Issuer: "payment-instructions"}
	return srv, &JWTValidator{KeySet: keys, Issuer: "payment-instructions"}
}

func issueToken(t *testing.T, srv *OAuthServer, clientID, secret, scope string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"grant_type": {"client_credentials"}}
	if scope != "" {
		form.Set("scope", scope)
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(clientID, secret)

	rr := httptest.NewRecorder()
	srv.TokenHandler(rr, req)
	return rr
}

func TestTokenIssuanceAndValidation(t *testing.T) {
	srv, validator := newTestServer(t)

	rr := issueToken(t, srv, "svc-a", "topsecret", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := rr.Body.String()
	require.Contains(t, body, `"access_token"`)

	tok := extractToken(t, body)
	claims, err := validator.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "svc-a", claims.ClientID)
	assert.Contains(t, claims.Scopes, "instructions:execute")
}

func TestTokenRejectsBadSecret(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := issueToken(t, srv, "svc-a", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenRejectsUnknownClient(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := issueToken(t, srv, "ghost", "topsecret", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenRejectsUngrantedScope(t *testing.T) {
	srv, _ := newTestServer(t)

	// svc-b has no scopes at all, so asking for one is a scope error.
	rr := issueToken(t, srv, "svc-b", "otherpass", "instructions:execute")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestTokenRejectsWrongGrantType(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{"grant_type": {"password"}}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("svc-a", "topsecret")

	rr := httptest.NewRecorder()
	srv.TokenHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidatorRejectsForeignIssuer(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Issuer = "someone-else"

	rr := issueToken(t, srv, "svc-a", "topsecret", "")
	require.Equal(t, http.StatusOK, rr.Code)

	validator := &JWTValidator{KeySet: srv.Keys, Issuer: "payment-instructions"}
	_, err := validator.Validate(extractToken(t, rr.Body.String()))
	assert.Error(t, err)
}

func TestJWKSExposesSigningKey(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/oauth/jwks.json", nil)
	rr := httptest.NewRecorder()
	srv.JWKSHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), srv.Keys.KeyID())
	assert.Contains(t, rr.Body.String(), `"RS256"`)
}

func TestParseClientsMalformed(t *testing.T) {
	_, err := ParseClients("id-without-secret")
	assert.Error(t, err)

	_, err = ParseClients(":secret")
	assert.Error(t, err)

	store, err := ParseClients("")
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestIntersectScopes(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, intersectScopes([]string{"b", "a"}, nil))
	assert.Equal(t, []string{"a"}, intersectScopes([]string{"a", "b"}, []string{"a"}))
	assert.Empty(t, intersectScopes([]string{"a"}, []string{"z"}))
}

// extractToken pulls access_token out of the raw JSON body without decoding
// into a struct, keeping the test independent of the response type.
func extractToken(t *testing.T, body string) string {
	t.Helper()

	const marker = `"access_token":"`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "no access_token in %s", body)
	rest := body[i+len(marker):]
	j := strings.Index(rest, `"`)
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}
