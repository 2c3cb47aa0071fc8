// Package authorizer validates Cognito tokens for the API Gateway request
// authorizer and passes the caller's tenant on to the API.
package authorizer

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

var errUnknownKey = errors.New("signing key not found")

// Authorizer checks bearer tokens issued by one user pool
type Authorizer struct {
	keys     KeySource
	issuer   string
	clientID string
	log      *zap.Logger
}

// New creates an authorizer. An empty clientID accepts tokens of any app client.
func New(keys KeySource, issuer, clientID string, log *zap.Logger) *Authorizer {
	return &Authorizer{keys: keys, issuer: issuer, clientID: clientID, log: log}
}

// Verify validates token and returns its claims. An unknown key ID triggers
// one refetch of the key set, which covers key rotation.
func (a *Authorizer) Verify(ctx context.Context, token string) (*utils.CognitoClaims, error) {
	claims, err := a.parse(ctx, token, false)
	if errors.Is(err, errUnknownKey) {
		claims, err = a.parse(ctx, token, true)
	}
	if err != nil {
		return nil, err
	}

	switch claims.TokenUse {
	case "access":
		if a.clientID != "" && claims.ClientID != a.clientID {
			return nil, errors.New("token was issued to another client")
		}
	case "id":
		if a.clientID != "" && !slices.Contains(claims.Audience, a.clientID) {
			return nil, errors.New("token was issued to another client")
		}
	default:
		return nil, fmt.Errorf("unsupported token_use %q", claims.TokenUse)
	}
	return claims, nil
}

func (a *Authorizer) parse(ctx context.Context, token string, refresh bool) (*utils.CognitoClaims, error) {
	set, err := a.keys.Keys(ctx, refresh)
	if err != nil {
		return nil, err
	}
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("key ID not found in token header")
		}
		key, ok := set.LookupKeyID(kid)
		if !ok {
			return nil, errUnknownKey
		}
		var raw interface{}
		if err := key.Raw(&raw); err != nil {
			return nil, fmt.Errorf("failed to read key %s: %w", kid, err)
		}
		return raw, nil
	}
	return utils.ParseJWT(token, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(a.issuer),
	)
}

// Handle is the Lambda handler for the API Gateway REST API request authorizer
func (a *Authorizer) Handle(ctx context.Context, request events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	authHeader := request.Headers["Authorization"]
	if authHeader == "" {
		authHeader = request.Headers["authorization"]
	}
	token, err := utils.ExtractBearerToken(authHeader)
	if err != nil {
		a.log.Info("Missing or invalid Authorization header", zap.String("methodArn", request.MethodArn))
		return generatePolicy("user", "Deny", request.MethodArn, nil), nil
	}

	claims, err := a.Verify(ctx, token)
	if err != nil {
		a.log.Warn("Token validation failed", zap.Error(err))
		return generatePolicy("user", "Deny", request.MethodArn, nil), nil
	}

	authContext := map[string]interface{}{
		"tenantId": claims.Tenant(),
		"userId":   claims.Subject,
		"email":    claims.Email,
	}
	// arn:aws:execute-api:{region}:{accountId}:{apiId}/{stage}/{httpVerb}/[{resource}]
	arn := fmt.Sprintf("arn:aws:execute-api:%s:%s:%s/%s/*",
		"*",
		request.RequestContext.AccountID,
		request.RequestContext.APIID,
		request.RequestContext.Stage,
	)
	a.log.Debug("Token accepted", zap.String("tenantId", claims.Tenant()), zap.String("tokenUse", claims.TokenUse))
	return generatePolicy(claims.Subject, "Allow", arn, authContext), nil
}

// generatePolicy generates an IAM policy for the authorizer response
func generatePolicy(principalID, effect, resource string, context map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	authResponse := events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
	}

	if effect != "" && resource != "" {
		authResponse.PolicyDocument = events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   effect,
					Resource: []string{resource},
				},
			},
		}
	}

	if context != nil {
		authResponse.Context = context
	}
	return authResponse
}
