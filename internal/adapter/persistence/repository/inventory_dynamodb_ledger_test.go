package repository

import (
	"context"
	"testing"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedStock(t *testing.T, partID string, qty int) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(inventoryItem{PartID: partID, QuantityAvailable: qty})
	require.NoError(t, err)
	return av
}

func TestInventoryDynamoLedger_QuantityAvailable(t *testing.T) {
	ctx := context.Background()

	ddb := &fakeDynamoDB{getItems: []map[string]types.AttributeValue{storedStock(t, "p1", 7)}}
	qty, err := NewInventoryDynamoLedger(ddb, "").QuantityAvailable(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	_, err = NewInventoryDynamoLedger(&fakeDynamoDB{}, "").QuantityAvailable(ctx, "nope")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestInventoryDynamoLedger_Decrement(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		ddb := &fakeDynamoDB{updateOut: storedStock(t, "p1", 3)}
		qty, err := NewInventoryDynamoLedger(ddb, "stock").Decrement(ctx, "p1", 2)
		require.NoError(t, err)
		assert.Equal(t, 3, qty)
		assert.Equal(t, "stock", *ddb.updateInputs[0].TableName)
		assert.Contains(t, *ddb.updateInputs[0].ConditionExpression, "#qty >= :delta")
	})

	t.Run("short", func(t *testing.T) {
		ddb := &fakeDynamoDB{
			updateErr: conditionalCheckFailedErr(),
			getItems:  []map[string]types.AttributeValue{storedStock(t, "p1", 1)},
		}
		_, err := NewInventoryDynamoLedger(ddb, "").Decrement(ctx, "p1", 2)
		assert.ErrorIs(t, err, entities.ErrInsufficientStock)
	})

	t.Run("unknown part", func(t *testing.T) {
		ddb := &fakeDynamoDB{updateErr: conditionalCheckFailedErr()}
		_, err := NewInventoryDynamoLedger(ddb, "").Decrement(ctx, "p1", 2)
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := NewInventoryDynamoLedger(&fakeDynamoDB{}, "").Decrement(ctx, "p1", 0)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}

func TestInventoryDynamoLedger_Increment(t *testing.T) {
	ddb := &fakeDynamoDB{updateOut: storedStock(t, "p1", 9)}
	qty, err := NewInventoryDynamoLedger(ddb, "").Increment(context.Background(), "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 9, qty)
	assert.Equal(t, "ADD #qty :restore", *ddb.updateInputs[0].UpdateExpression)
}

func TestInventoryDynamoLedger_DecrementMatchesInvoicePartMove(t *testing.T) {
	ctx := context.Background()

	ledgerDB := &fakeDynamoDB{updateOut: storedStock(t, "part-1", 3)}
	_, err := NewInventoryDynamoLedger(ledgerDB, "inventory").Decrement(ctx, "part-1", 2)
	require.NoError(t, err)

	invoiceDB := &fakeDynamoDB{getItems: []map[string]types.AttributeValue{storedInvoice(t, sampleInvoice())}}
	_, err = NewInvoiceDynamoRepository(invoiceDB, "invoices", "inventory").
		ApplyPartChange(ctx, "appt-1", interfaces.PartChange{PartID: "part-1", ExpectedCount: 0, NewCount: 2})
	require.NoError(t, err)

	single := ledgerDB.updateInputs[0]
	moved := invoiceDB.transactInputs[0].TransactItems[1].Update
	assert.Equal(t, *single.UpdateExpression, *moved.UpdateExpression)
	assert.Equal(t, *single.ConditionExpression, *moved.ConditionExpression)
	assert.Equal(t, single.Key, moved.Key)
}
