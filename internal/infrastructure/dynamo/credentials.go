package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-totp-verify/internal/domain"
)

// GetItemAPI is the subset of *dynamodb.Client the repo needs.
type GetItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// CredentialRepo reads provisioned TOTP secrets.
// PK: user_id; attribute secret holds the base32 shared secret.
type CredentialRepo struct {
	client    GetItemAPI
	tableName string
	timeout   time.Duration
}

func NewCredentialRepo(client GetItemAPI, tableName string, timeout time.Duration) *CredentialRepo {
	return &CredentialRepo{client: client, tableName: tableName, timeout: timeout}
}

type secretItem struct {
	UserID string `dynamodbav:"user_id"`
	Secret string `dynamodbav:"secret"`
}

// Lookup returns the user's credential, or nil when no item exists.
func (r *CredentialRepo) Lookup(ctx context.Context, userID string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  strKey("user_id", userID),
		ProjectionExpression: aws.String("user_id, secret"),
	})
	if err != nil {
		return nil, fmt.Errorf("get item from %s: %w: %w", r.tableName, domain.ErrStore, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var item secretItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal %s item: unexpected shape: %w", r.tableName, domain.ErrStore)
	}
	return domain.ParseStoredCredential(userID, item.Secret)
}
