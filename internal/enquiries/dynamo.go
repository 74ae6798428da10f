package enquiries

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/meridianfx/enquiries-api/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore persists enquiry documents to DynamoDB. The collection
// name passed to each call is the table name, mirroring the document
// store the marketing site writes to.
type DynamoStore struct {
	client dynamoAPI
	logger *logging.Logger
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("enquiries: dynamodb client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoStore{client: client, logger: logger}
}

// Append writes one enquiry document, assigning the id and the
// server-side CreatedAt. The conditional put guards against an id
// collision ever silently overwriting a submission.
func (s *DynamoStore) Append(ctx context.Context, collection string, e *Enquiry) (string, error) {
	if e == nil {
		return "", &PersistenceError{Op: "append", Collection: collection, Err: errNilEnquiry}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return "", &PersistenceError{Op: "append", Collection: collection, Err: err}
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(collection),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", &PersistenceError{Op: "append", Collection: collection, Err: err}
	}
	return e.ID, nil
}

// List scans the collection and pages in memory. Enquiry volume is a
// marketing form's, not a firehose; a scan per admin page view is fine
// and keeps the table free of secondary indexes.
func (s *DynamoStore) List(ctx context.Context, collection string, f ListFilter) ([]*Enquiry, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(collection)}
	if f.UnresolvedOnly {
		input.FilterExpression = aws.String("resolved = :resolved")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":resolved": &types.AttributeValueMemberBOOL{Value: false},
		}
	}

	var out []*Enquiry
	for {
		resp, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, &PersistenceError{Op: "list", Collection: collection, Err: err}
		}
		for _, item := range resp.Items {
			var e Enquiry
			if err := attributevalue.UnmarshalMap(item, &e); err != nil {
				return nil, &PersistenceError{Op: "list", Collection: collection, Err: err}
			}
			out = append(out, &e)
		}
		if resp.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f), nil
}

// MarkResolved sets the triage flag on an existing enquiry.
func (s *DynamoStore) MarkResolved(ctx context.Context, collection, id string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(collection),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("SET resolved = :resolved"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":resolved": &types.AttributeValueMemberBOOL{Value: true},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrEnquiryNotFound
		}
		return &PersistenceError{Op: "mark_resolved", Collection: collection, Err: err}
	}
	return nil
}
