package authorizer

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

const (
	testIssuer = "https://cognito-idp.ap-northeast-2.amazonaws.com/ap-northeast-2_pool"
	testClient = "client-1"
)

func newKeySet(t *testing.T, kid string) (*rsa.PrivateKey, jwk.Set) {
	t.Helper()
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key, err := jwk.New(&private.PublicKey)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	require.NoError(t, key.Set(jwk.AlgorithmKey, "RS256"))

	set := jwk.NewSet()
	set.Add(key)
	return private, set
}

func sign(t *testing.T, key *rsa.PrivateKey, kid string, claims utils.CognitoClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func accessClaims() utils.CognitoClaims {
	return utils.CognitoClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenUse: "access",
		ClientID: testClient,
		TenantID: "shop-1",
	}
}

func request(token string) events.APIGatewayCustomAuthorizerRequestTypeRequest {
	req := events.APIGatewayCustomAuthorizerRequestTypeRequest{
		MethodArn: "arn:aws:execute-api:ap-northeast-2:123:api/prod/GET/transactions",
		Headers:   map[string]string{"Authorization": "Bearer " + token},
	}
	req.RequestContext.AccountID = "123"
	req.RequestContext.APIID = "api"
	req.RequestContext.Stage = "prod"
	return req
}

func TestAuthorizer_Handle(t *testing.T) {
	private, set := newKeySet(t, "k1")
	a := New(StaticKeys{Set: set}, testIssuer, testClient, zap.NewNop())

	t.Run("allows valid access tokens", func(t *testing.T) {
		// Setup
		token := sign(t, private, "k1", accessClaims())

		// Act
		resp, err := a.Handle(context.Background(), request(token))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Allow", resp.PolicyDocument.Statement[0].Effect)
		assert.Equal(t, []string{"arn:aws:execute-api:*:123:api/prod/*"}, resp.PolicyDocument.Statement[0].Resource)
		assert.Equal(t, "shop-1", resp.Context["tenantId"])
		assert.Equal(t, "user-1", resp.Context["userId"])
	})

	t.Run("tenant defaults to the subject", func(t *testing.T) {
		claims := accessClaims()
		claims.TenantID = ""

		resp, err := a.Handle(context.Background(), request(sign(t, private, "k1", claims)))

		require.NoError(t, err)
		assert.Equal(t, "user-1", resp.Context["tenantId"])
	})

	t.Run("denies", func(t *testing.T) {
		expired := accessClaims()
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		otherClient := accessClaims()
		otherClient.ClientID = "client-2"
		otherIssuer := accessClaims()
		otherIssuer.Issuer = "https://example.com"
		refresh := accessClaims()
		refresh.TokenUse = "refresh"
		stranger, _ := newKeySet(t, "k1")

		cases := map[string]string{
			"expired":       sign(t, private, "k1", expired),
			"other client":  sign(t, private, "k1", otherClient),
			"other issuer":  sign(t, private, "k1", otherIssuer),
			"refresh token": sign(t, private, "k1", refresh),
			"unknown kid":   sign(t, private, "k2", accessClaims()),
			"wrong key":     sign(t, stranger, "k1", accessClaims()),
			"garbage":       "not-a-token",
		}
		for name, token := range cases {
			t.Run(name, func(t *testing.T) {
				resp, err := a.Handle(context.Background(), request(token))

				require.NoError(t, err)
				assert.Equal(t, "Deny", resp.PolicyDocument.Statement[0].Effect)
				assert.Nil(t, resp.Context)
			})
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := request("")
		req.Headers = map[string]string{}

		resp, err := a.Handle(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "Deny", resp.PolicyDocument.Statement[0].Effect)
	})
}

func TestAuthorizer_VerifyIDToken(t *testing.T) {
	// Setup
	private, set := newKeySet(t, "k1")
	a := New(StaticKeys{Set: set}, testIssuer, testClient, zap.NewNop())
	claims := accessClaims()
	claims.TokenUse = "id"
	claims.ClientID = ""
	claims.Audience = jwt.ClaimStrings{testClient}
	claims.Email = "owner@example.com"

	// Act
	got, err := a.Verify(context.Background(), sign(t, private, "k1", claims))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", got.Email)
}
