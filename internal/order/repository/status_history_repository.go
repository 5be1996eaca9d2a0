package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"retailorders/internal/domain"
)

// sortKeyLayout is fixed width so that sort keys order lexically by time.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z07:00"

type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type statusChangeItem struct {
	OrderID           string `dynamodbav:"order_id"`
	ChangedAt         string `dynamodbav:"changed_at"`
	Status            string `dynamodbav:"status"`
	EstimatedDelivery string `dynamodbav:"estimated_delivery"`
	ChangedBy         string `dynamodbav:"changed_by"`
}

// DynamoStatusHistoryRepository keeps the status history of every order.
//
// Table requirements:
//   - PK: order_id (string)
//   - SK: changed_at (string, fixed-width nanosecond UTC timestamp)
type DynamoStatusHistoryRepository struct {
	client    DynamoDBClient
	tableName string
}

func NewDynamoStatusHistoryRepository(client DynamoDBClient, tableName string) *DynamoStatusHistoryRepository {
	return &DynamoStatusHistoryRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *DynamoStatusHistoryRepository) Append(ctx context.Context, change domain.StatusChange) error {
	av, err := attributevalue.MarshalMap(toStatusChangeItem(change))
	if err != nil {
		return fmt.Errorf("marshalling status change: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting status change: %w", err)
	}

	return nil
}

// ListByOrderID returns the changes of one order, oldest first.
func (r *DynamoStatusHistoryRepository) ListByOrderID(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	changes := []domain.StatusChange{}

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("#order_id = :order_id"),
			ExpressionAttributeNames: map[string]string{
				"#order_id": "order_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":order_id": &types.AttributeValueMemberS{Value: orderID},
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("querying status history: %w", err)
		}

		var items []statusChangeItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshalling status history: %w", err)
		}
		for _, it := range items {
			change, err := fromStatusChangeItem(it)
			if err != nil {
				return nil, err
			}
			changes = append(changes, change)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return changes, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toStatusChangeItem(c domain.StatusChange) statusChangeItem {
	return statusChangeItem{
		OrderID:           c.OrderID,
		ChangedAt:         c.ChangedAt.UTC().Format(sortKeyLayout),
		Status:            c.Status,
		EstimatedDelivery: c.EstimatedDelivery.UTC().Format(time.RFC3339Nano),
		ChangedBy:         c.ChangedBy,
	}
}

func fromStatusChangeItem(it statusChangeItem) (domain.StatusChange, error) {
	changedAt, err := time.Parse(sortKeyLayout, it.ChangedAt)
	if err != nil {
		return domain.StatusChange{}, fmt.Errorf("parsing changed_at of order %s: %w", it.OrderID, err)
	}
	estimatedDelivery, err := time.Parse(time.RFC3339Nano, it.EstimatedDelivery)
	if err != nil {
		return domain.StatusChange{}, fmt.Errorf("parsing estimated_delivery of order %s: %w", it.OrderID, err)
	}
	return domain.StatusChange{
		OrderID:           it.OrderID,
		Status:            it.Status,
		EstimatedDelivery: estimatedDelivery,
		ChangedBy:         it.ChangedBy,
		ChangedAt:         changedAt,
	}, nil
}
