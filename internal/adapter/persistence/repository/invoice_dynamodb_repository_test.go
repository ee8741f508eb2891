package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedInvoice(t *testing.T, inv entities.Invoice) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	require.NoError(t, err)
	return av
}

func sampleInvoice() entities.Invoice {
	inv := entities.NewInvoice("inv-1", "appt-1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	inv.UsedParts["part-1"] = 2
	inv.LabourCost = decimal.RequireFromString("120.50")
	inv.TaxPercentage = decimal.NewFromInt(10)
	inv.Version = 3
	return inv
}

func TestInvoiceDynamoRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewInvoiceDynamoRepository(ddb, "", "")

		got, created, err := repo.CreateIfAbsent(ctx, sampleInvoice())
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "inv-1", got.ID)
		require.Len(t, ddb.putInputs, 1)
		assert.Equal(t, "invoices", *ddb.putInputs[0].TableName)
		assert.Equal(t, "attribute_not_exists(#appointment_id)", *ddb.putInputs[0].ConditionExpression)
	})

	t.Run("existing returned", func(t *testing.T) {
		existing := sampleInvoice()
		existing.ID = "inv-winner"
		ddb := &fakeDynamoDB{
			putErr:   conditionalCheckFailedErr(),
			getItems: []map[string]types.AttributeValue{storedInvoice(t, existing)},
		}
		repo := NewInvoiceDynamoRepository(ddb, "invoices", "inventory")

		got, created, err := repo.CreateIfAbsent(ctx, sampleInvoice())
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "inv-winner", got.ID)
		assert.Equal(t, 2, got.UsedParts["part-1"])
		assert.True(t, got.LabourCost.Equal(decimal.RequireFromString("120.5")))
	})

	t.Run("other errors propagate", func(t *testing.T) {
		ddb := &fakeDynamoDB{putErr: errBoom}
		_, _, err := NewInvoiceDynamoRepository(ddb, "", "").CreateIfAbsent(ctx, sampleInvoice())
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestInvoiceDynamoRepository_GetByID_StaleIndex(t *testing.T) {
	ctx := context.Background()
	current := sampleInvoice()
	current.ID = "inv-2"
	stale := sampleInvoice()

	ddb := &fakeDynamoDB{
		queryItems: []map[string]types.AttributeValue{storedInvoice(t, stale)},
		getItems:   []map[string]types.AttributeValue{storedInvoice(t, current)},
	}
	got, err := NewInvoiceDynamoRepository(ddb, "", "").GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Equal(t, "invoice_id-index", *ddb.queryInputs[0].IndexName)
	assert.True(t, *ddb.getInputs[0].ConsistentRead)
}

func TestInvoiceDynamoRepository_UpdateMissingReturnsZero(t *testing.T) {
	ddb := &fakeDynamoDB{updateErr: conditionalCheckFailedErr()}
	got, err := NewInvoiceDynamoRepository(ddb, "", "").UpdateCharges(context.Background(), "appt-x", interfaces.ChargesUpdate{LabourCost: ptrDecimal(decimal.NewFromInt(5))})
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	require.Len(t, ddb.updateInputs, 1)
	assert.Equal(t, "attribute_exists(#appointment_id)", *ddb.updateInputs[0].ConditionExpression)
}

func TestInvoiceDynamoRepository_UpdateCharges(t *testing.T) {
	ctx := context.Background()

	t.Run("both charges in one update", func(t *testing.T) {
		stored := sampleInvoice()
		stored.LabourCost = decimal.NewFromInt(200)
		stored.TaxPercentage = decimal.NewFromInt(18)
		ddb := &fakeDynamoDB{updateOut: storedInvoice(t, stored)}

		got, err := NewInvoiceDynamoRepository(ddb, "", "").UpdateCharges(ctx, "appt-1", interfaces.ChargesUpdate{
			LabourCost:    ptrDecimal(decimal.NewFromInt(200)),
			TaxPercentage: ptrDecimal(decimal.NewFromInt(18)),
		})
		require.NoError(t, err)
		assert.True(t, got.LabourCost.Equal(decimal.NewFromInt(200)))

		require.Len(t, ddb.updateInputs, 1)
		in := ddb.updateInputs[0]
		assert.Equal(t, "SET #updated_at = :updated_at, #labour_cost = :labour_cost, #tax_percentage = :tax_percentage ADD #version :one", *in.UpdateExpression)
		assert.Equal(t, "200", in.ExpressionAttributeValues[":labour_cost"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, "18", in.ExpressionAttributeValues[":tax_percentage"].(*types.AttributeValueMemberS).Value)
	})

	t.Run("unset fields are not written", func(t *testing.T) {
		ddb := &fakeDynamoDB{updateOut: storedInvoice(t, sampleInvoice())}

		_, err := NewInvoiceDynamoRepository(ddb, "", "").UpdateCharges(ctx, "appt-1", interfaces.ChargesUpdate{
			TaxPercentage: ptrDecimal(decimal.NewFromInt(7)),
		})
		require.NoError(t, err)

		in := ddb.updateInputs[0]
		assert.NotContains(t, *in.UpdateExpression, "#labour_cost")
		assert.NotContains(t, in.ExpressionAttributeNames, "#labour_cost")
		assert.NotContains(t, in.ExpressionAttributeValues, ":labour_cost")
	})
}

func ptrDecimal(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestInvoiceDynamoRepository_ApplyPartChange(t *testing.T) {
	ctx := context.Background()

	t.Run("growth takes stock in the same transaction", func(t *testing.T) {
		ddb := &fakeDynamoDB{getItems: []map[string]types.AttributeValue{storedInvoice(t, sampleInvoice())}}
		repo := NewInvoiceDynamoRepository(ddb, "invoices", "inventory")

		_, err := repo.ApplyPartChange(ctx, "appt-1", interfaces.PartChange{PartID: "part-1", ExpectedCount: 0, NewCount: 2})
		require.NoError(t, err)

		require.Len(t, ddb.transactInputs, 1)
		items := ddb.transactInputs[0].TransactItems
		require.Len(t, items, 2)
		assert.Contains(t, *items[0].Update.ConditionExpression, "attribute_not_exists(#used_parts.#pid)")
		assert.Equal(t, "part-1", items[0].Update.ExpressionAttributeNames["#pid"])
		assert.Equal(t, "inventory", *items[1].Update.TableName)
		assert.Equal(t, "SET #qty = #qty - :delta", *items[1].Update.UpdateExpression)
		assert.Equal(t, "2", items[1].Update.ExpressionAttributeValues[":delta"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("removal restores stock", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewInvoiceDynamoRepository(ddb, "", "")

		_, err := repo.ApplyPartChange(ctx, "appt-1", interfaces.PartChange{PartID: "part-1", ExpectedCount: 2, NewCount: 0})
		require.NoError(t, err)

		items := ddb.transactInputs[0].TransactItems
		assert.Contains(t, *items[0].Update.UpdateExpression, "REMOVE #used_parts.#pid")
		assert.Contains(t, *items[0].Update.ConditionExpression, "#used_parts.#pid = :expected")
		assert.Equal(t, "ADD #qty :restore", *items[1].Update.UpdateExpression)
		assert.Nil(t, items[1].Update.ConditionExpression)
	})

	t.Run("zero delta does not write", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		_, err := NewInvoiceDynamoRepository(ddb, "", "").ApplyPartChange(ctx, "appt-1", interfaces.PartChange{PartID: "p", ExpectedCount: 1, NewCount: 1})
		require.NoError(t, err)
		assert.Empty(t, ddb.transactInputs)
	})

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"stock short", transactionCanceled("", conditionalCheckFailed), entities.ErrInsufficientStock},
		{"line moved", transactionCanceled(conditionalCheckFailed, ""), interfaces.ErrConditionFailed},
		{"conflict", transactionCanceled("TransactionConflict", ""), interfaces.ErrConditionFailed},
		{"other", errBoom, errBoom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ddb := &fakeDynamoDB{transactErr: tc.err}
			_, err := NewInvoiceDynamoRepository(ddb, "", "").ApplyPartChange(ctx, "appt-1", interfaces.PartChange{PartID: "p", NewCount: 1})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestInvoiceDynamoRepository_Delete(t *testing.T) {
	ctx := context.Background()
	inv := sampleInvoice()
	inv.UsedParts["part-2"] = 1

	t.Run("restores every line", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		require.NoError(t, NewInvoiceDynamoRepository(ddb, "", "").Delete(ctx, inv))

		items := ddb.transactInputs[0].TransactItems
		require.Len(t, items, 3)
		require.NotNil(t, items[0].Delete)
		assert.Equal(t, "3", items[0].Delete.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, "2", items[1].Update.ExpressionAttributeValues[":restore"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, "1", items[2].Update.ExpressionAttributeValues[":restore"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("version moved", func(t *testing.T) {
		ddb := &fakeDynamoDB{transactErr: transactionCanceled(conditionalCheckFailed, "", "")}
		err := NewInvoiceDynamoRepository(ddb, "", "").Delete(ctx, inv)
		assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
	})
}
