package cognito

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"
)

// Auth parameter keys for the ADMIN_USER_PASSWORD_AUTH flow
const (
	authUsername   = "USERNAME"
	authPassword   = "PASSWORD"
	emailAttribute = "email"
)

// Client defines the user pool operations the provider needs
type Client interface {
	AdminCreateUser(ctx context.Context, params *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminInitiateAuth(ctx context.Context, params *cip.AdminInitiateAuthInput, optFns ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error)
}

// IdentityProvider implements ports.IdentityProvider on a Cognito user pool
type IdentityProvider struct {
	client     Client
	userPoolID string
	clientID   string
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewIdentityProvider creates a provider bound to one pool and app client
func NewIdentityProvider(client Client, userPoolID, clientID string, tracer *observability.Tracer, logger *zap.Logger) *IdentityProvider {
	return &IdentityProvider{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		tracer:     tracer,
		logger:     logger,
	}
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)

// CreateUser creates the account with its email attribute. The welcome
// message is suppressed.
func (p *IdentityProvider) CreateUser(ctx context.Context, username, email string) error {
	input := &cip.AdminCreateUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(emailAttribute), Value: aws.String(email)},
		},
		MessageAction: types.MessageActionTypeSuppress,
	}

	err := p.tracer.TraceFunction(ctx, "cognito.AdminCreateUser", func(ctx context.Context) error {
		_, err := p.client.AdminCreateUser(ctx, input)
		return err
	})
	if err != nil {
		p.logger.Warn("Failed to create user", zap.String("username", username), zap.Error(err))
		return apperrors.FromAWSError(err)
	}

	return nil
}

// SetPermanentPassword sets the account's password and marks it permanent
func (p *IdentityProvider) SetPermanentPassword(ctx context.Context, username, password string) error {
	input := &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
		Password:   aws.String(password),
		Permanent:  true,
	}

	err := p.tracer.TraceFunction(ctx, "cognito.AdminSetUserPassword", func(ctx context.Context) error {
		_, err := p.client.AdminSetUserPassword(ctx, input)
		return err
	})
	if err != nil {
		p.logger.Warn("Failed to set user password", zap.String("username", username), zap.Error(err))
		return apperrors.FromAWSError(err)
	}

	return nil
}

// Authenticate runs the admin username/password flow. A challenge
// response (for example NEW_PASSWORD_REQUIRED) is reported as 401 since no
// tokens were issued.
func (p *IdentityProvider) Authenticate(ctx context.Context, username, password string) (*entities.AuthTokens, error) {
	input := &cip.AdminInitiateAuthInput{
		UserPoolId: aws.String(p.userPoolID),
		ClientId:   aws.String(p.clientID),
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		AuthParameters: map[string]string{
			authUsername: username,
			authPassword: password,
		},
	}

	var output *cip.AdminInitiateAuthOutput
	err := p.tracer.TraceFunction(ctx, "cognito.AdminInitiateAuth", func(ctx context.Context) error {
		var err error
		output, err = p.client.AdminInitiateAuth(ctx, input)
		return err
	})
	if err != nil {
		p.logger.Warn("Failed to authenticate user", zap.String("username", username), zap.Error(err))
		return nil, apperrors.FromAWSError(err)
	}

	result := output.AuthenticationResult
	if result == nil {
		p.logger.Warn("Authentication returned a challenge",
			zap.String("username", username),
			zap.String("challenge", string(output.ChallengeName)),
		)
		return nil, apperrors.FromStatus(http.StatusUnauthorized,
			fmt.Sprintf("Authentication challenge required: %s", output.ChallengeName))
	}

	return &entities.AuthTokens{
		TokenType:        aws.ToString(result.TokenType),
		ExpiresInSeconds: int(result.ExpiresIn),
		AccessToken:      aws.ToString(result.AccessToken),
		RefreshToken:     aws.ToString(result.RefreshToken),
		IDToken:          aws.ToString(result.IdToken),
	}, nil
}
