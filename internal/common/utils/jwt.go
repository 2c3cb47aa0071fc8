package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// CognitoClaims represents the claims in a Cognito JWT token
type CognitoClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	TenantID string `json:"custom:tenantId"`
	TokenUse string `json:"token_use"`
	ClientID string `json:"client_id"`
}

// Tenant returns the tenant the token belongs to. Owners without a tenant
// attribute get a book of their own.
func (c *CognitoClaims) Tenant() string {
	if c.TenantID != "" {
		return c.TenantID
	}
	return c.Subject
}

// ParseJWT parses a JWT token and validates it
func ParseJWT(tokenString string, keyFunc jwt.Keyfunc, opts ...jwt.ParserOption) (*CognitoClaims, error) {
	opts = append(opts, jwt.WithExpirationRequired())
	token, err := jwt.ParseWithClaims(tokenString, &CognitoClaims{}, keyFunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*CognitoClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be: Bearer {token}")
	}

	return parts[1], nil
}

// GetTokenIssuer constructs the token issuer URL from the Cognito user pool ID
func GetTokenIssuer(userPoolID string, region string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// BuildJWKSURL constructs the JWKS URL from the Cognito user pool ID
func BuildJWKSURL(userPoolID string, region string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json", region, userPoolID)
}
