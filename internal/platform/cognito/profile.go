package cognito

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	commonErrors "github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
	"github.com/yysangh2-design/APP-QTEX/pkg/validator"
)

// User attributes holding the business profile
const (
	AttrTenantID       = "custom:tenantId"
	AttrBusinessName   = "custom:businessName"
	AttrBusinessNumber = "custom:businessNumber"
)

// API is the part of the Cognito client the profile service calls
type API interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
	UpdateUserAttributes(ctx context.Context, params *cognitoidentityprovider.UpdateUserAttributesInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.UpdateUserAttributesOutput, error)
}

// ProfileService reads the profile of the owner of an access token
type ProfileService struct {
	client API
}

// NewProfileService creates a new profile service
func NewProfileService(client API) *ProfileService {
	return &ProfileService{client: client}
}

// Profile returns the profile of the user the access token belongs to.
func (s *ProfileService) Profile(ctx context.Context, accessToken string) (*tenant.Profile, error) {
	if accessToken == "" {
		return nil, commonErrors.NewAuthenticationError("access token is required")
	}
	result, err := s.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, mapError("failed to get user details", err)
	}

	profile := &tenant.Profile{UserID: aws.ToString(result.Username)}
	for _, attr := range result.UserAttributes {
		value := aws.ToString(attr.Value)
		switch aws.ToString(attr.Name) {
		case "sub":
			profile.UserID = value
		case "email":
			profile.Email = value
		case "name":
			profile.Name = value
		case "phone_number":
			profile.Phone = value
		case AttrTenantID:
			profile.TenantID = value
		case AttrBusinessName:
			profile.BusinessName = value
		case AttrBusinessNumber:
			profile.BusinessNumber = value
		}
	}
	if profile.TenantID == "" {
		profile.TenantID = profile.UserID
	}
	return profile, nil
}

// UpdateProfile writes the non-empty fields of update.
func (s *ProfileService) UpdateProfile(ctx context.Context, accessToken string, update tenant.ProfileUpdate) error {
	if accessToken == "" {
		return commonErrors.NewAuthenticationError("access token is required")
	}
	if update.BusinessNumber != "" {
		if !validator.ValidBusinessNumber(update.BusinessNumber) {
			return commonErrors.NewValidationError("invalid business registration number")
		}
		update.BusinessNumber = validator.FormatBusinessNumber(update.BusinessNumber)
	}

	var attributes []types.AttributeType
	add := func(name, value string) {
		if value != "" {
			attributes = append(attributes, types.AttributeType{Name: aws.String(name), Value: aws.String(value)})
		}
	}
	add("name", update.Name)
	add("phone_number", update.Phone)
	add(AttrBusinessName, update.BusinessName)
	add(AttrBusinessNumber, update.BusinessNumber)
	if len(attributes) == 0 {
		return nil
	}

	if _, err := s.client.UpdateUserAttributes(ctx, &cognitoidentityprovider.UpdateUserAttributesInput{
		AccessToken:    aws.String(accessToken),
		UserAttributes: attributes,
	}); err != nil {
		return mapError("failed to update user attributes", err)
	}
	return nil
}

func mapError(message string, err error) error {
	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		return commonErrors.NewAuthenticationError("access token was rejected")
	}
	var notFound *types.UserNotFoundException
	if errors.As(err, &notFound) {
		return commonErrors.NewNotFoundError("user not found")
	}
	return commonErrors.NewExternalServiceError("cognito", err)
}
