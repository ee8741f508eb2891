package repository

import (
	"context"
	"fmt"
	"strconv"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultInventoryTableName = "inventory"

type inventoryItem struct {
	PartID            string `dynamodbav:"part_id"`
	QuantityAvailable int    `dynamodbav:"quantity_available"`
}

// InventoryDynamoLedger keeps quantity available per part in DynamoDB.
//
// Table requirements:
//   - PK: part_id (string)

type InventoryDynamoLedger struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IInventoryLedger = (*InventoryDynamoLedger)(nil)

func NewInventoryDynamoLedger(ddb DynamoDBAPI, tableName string) *InventoryDynamoLedger {
	return &InventoryDynamoLedger{
		ddb:       ddb,
		tableName: tableOr(tableName, defaultInventoryTableName),
	}
}

// Put sets the stock of a part, creating it when missing.
func (l *InventoryDynamoLedger) Put(ctx context.Context, partID string, quantity int) error {
	av, err := attributevalue.MarshalMap(inventoryItem{PartID: partID, QuantityAvailable: quantity})
	if err != nil {
		return err
	}
	_, err = l.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.tableName),
		Item:      av,
	})
	return err
}

func (l *InventoryDynamoLedger) QuantityAvailable(ctx context.Context, partID string) (int, error) {
	out, err := l.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(l.tableName),
		Key:            inventoryKey(partID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 0, fmt.Errorf("inventory part %s: %w", partID, interfaces.ErrNotFound)
	}

	var it inventoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return 0, err
	}
	return it.QuantityAvailable, nil
}

func (l *InventoryDynamoLedger) Decrement(ctx context.Context, partID string, count int) (int, error) {
	if count <= 0 {
		return 0, entities.ErrInvalidAmount
	}
	qty, err := l.move(ctx, inventoryMove(l.tableName, partID, count))
	if err != nil && isConditionalCheckFailed(err) {
		if _, lookupErr := l.QuantityAvailable(ctx, partID); lookupErr != nil {
			return 0, lookupErr
		}
		return 0, entities.ErrInsufficientStock
	}
	return qty, err
}

func (l *InventoryDynamoLedger) Increment(ctx context.Context, partID string, count int) (int, error) {
	if count <= 0 {
		return 0, entities.ErrInvalidAmount
	}
	return l.move(ctx, inventoryMove(l.tableName, partID, -count))
}

func (l *InventoryDynamoLedger) move(ctx context.Context, u *types.Update) (int, error) {
	out, err := l.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 u.TableName,
		Key:                       u.Key,
		ConditionExpression:       u.ConditionExpression,
		UpdateExpression:          u.UpdateExpression,
		ExpressionAttributeNames:  u.ExpressionAttributeNames,
		ExpressionAttributeValues: u.ExpressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}
	var it inventoryItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return 0, err
	}
	return it.QuantityAvailable, nil
}

// inventoryMove takes delta units from a part (restores them when delta is negative).
// Taking is conditional on enough stock; restoring creates the row when missing.
func inventoryMove(table, partID string, delta int) *types.Update {
	names := map[string]string{"#qty": "quantity_available"}
	if delta < 0 {
		return &types.Update{
			TableName:                 aws.String(table),
			Key:                       inventoryKey(partID),
			UpdateExpression:          aws.String("ADD #qty :restore"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: map[string]types.AttributeValue{":restore": numberValue(-delta)},
		}
	}
	names["#part_id"] = "part_id"
	return &types.Update{
		TableName:                 aws.String(table),
		Key:                       inventoryKey(partID),
		ConditionExpression:       aws.String("attribute_exists(#part_id) AND #qty >= :delta"),
		UpdateExpression:          aws.String("SET #qty = #qty - :delta"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: map[string]types.AttributeValue{":delta": numberValue(delta)},
	}
}

func inventoryKey(partID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"part_id": &types.AttributeValueMemberS{Value: partID},
	}
}

func numberValue(n int) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.Itoa(n)}
}
