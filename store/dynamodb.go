// Package store implements the venue table gateway on DynamoDB and in memory.
package store

import (
	"context"

	"venues-backend/common"
	"venues-backend/venues"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoStore is a venues.Store backed by a single DynamoDB table whose
// partition key is the string attribute venueID.
type DynamoStore struct {
	client    common.DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

var _ venues.Store = (*DynamoStore)(nil)

// NewDynamoStore creates a store over tableName.
func NewDynamoStore(client common.DynamoDBAPI, tableName string, logger *zap.Logger) *DynamoStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		venues.AttrVenueID: &types.AttributeValueMemberS{Value: id},
	}
}

// Put writes the venue, overwriting any item with the same key.
func (s *DynamoStore) Put(ctx context.Context, v venues.Venue) error {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return unavailable("put", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return unavailable("put", err)
	}
	return nil
}

// Get reads the item stored under id with a strongly consistent read.
func (s *DynamoStore) Get(ctx context.Context, id string) (venues.Venue, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return venues.Venue{}, false, unavailable("get", err)
	}
	if out.Item == nil {
		return venues.Venue{}, false, nil
	}

	var v venues.Venue
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return venues.Venue{}, false, unavailable("get", err)
	}
	return v, true, nil
}

// Delete removes the item stored under id. DynamoDB treats deleting a
// missing key as success and so does this method.
func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(id),
	})
	if err != nil {
		return unavailable("delete", err)
	}
	return nil
}

// ScanAll reads the whole table, following every page.
func (s *DynamoStore) ScanAll(ctx context.Context) ([]venues.Venue, error) {
	expr, err := expression.NewBuilder().WithProjection(venueProjection()).Build()
	if err != nil {
		return nil, unavailable("scan", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                aws.String(s.tableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	}

	result := []venues.Venue{}
	pages := 0
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, unavailable("scan", err)
		}
		pages++

		var items []venues.Venue
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, unavailable("scan", err)
		}
		result = append(result, items...)
	}

	s.logger.Debug("Scanned venue table",
		zap.String("table", s.tableName),
		zap.Int("pages", pages),
		zap.Int("count", len(result)),
	)
	return result, nil
}

func venueProjection() expression.ProjectionBuilder {
	return expression.NamesList(
		expression.Name(venues.AttrVenueID),
		expression.Name(venues.AttrVenueDescription),
		expression.Name(venues.AttrAccountID),
		expression.Name(venues.AttrAccountDenomination),
		expression.Name(venues.AttrAccountDescription),
	)
}
