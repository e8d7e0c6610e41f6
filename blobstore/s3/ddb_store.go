package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/coldb/blobstore"
)

const (
	attrKey   = "pk"
	attrValue = "val"
)

// ErrItemTooLarge is returned when a value exceeds DynamoDB's item limit.
var ErrItemTooLarge = errors.New("dynamodb: item exceeds 400KB limit")

// maxItemBytes leaves room for the key and attribute names.
const maxItemBytes = 400*1024 - 256

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore implements blobstore.BlobStore on a DynamoDB table.
type DynamoStore struct {
	client    DDBClient
	tableName string
	prefix    string
}

var _ blobstore.BlobStore = (*DynamoStore)(nil)

// NewDynamoStore creates a store over tableName. prefix namespaces the
// partition keys so several stores can share a table.
func NewDynamoStore(client DDBClient, tableName, prefix string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		prefix:    prefix,
	}
}

func (s *DynamoStore) itemKey(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrKey: &types.AttributeValueMemberS{Value: s.prefix + name},
	}
}

// Get reads an item with a strongly consistent read.
func (s *DynamoStore) Get(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil, blobstore.ErrNotFound
	}

	val, ok := resp.Item[attrValue].(*types.AttributeValueMemberB)
	if !ok {
		// DynamoDB drops empty binary attributes on some SDK paths.
		if _, present := resp.Item[attrValue]; !present {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("dynamodb get: invalid %s attribute", attrValue)
	}
	return val.Value, nil
}

// Put writes an item, replacing any previous value.
func (s *DynamoStore) Put(ctx context.Context, name string, data []byte) error {
	if len(data) > maxItemBytes {
		return ErrItemTooLarge
	}

	item := s.itemKey(name)
	item[attrValue] = &types.AttributeValueMemberB{Value: data}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put: %w", err)
	}
	return nil
}

// Delete removes an item. DynamoDB treats missing items as success.
func (s *DynamoStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.itemKey(name),
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete: %w", err)
	}
	return nil
}

// Exists reads only the key attribute.
func (s *DynamoStore) Exists(ctx context.Context, name string) (bool, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.tableName),
		Key:                  s.itemKey(name),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("#k"),
		ExpressionAttributeNames: map[string]string{
			"#k": attrKey,
		},
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb exists: %w", err)
	}
	return len(resp.Item) > 0, nil
}
