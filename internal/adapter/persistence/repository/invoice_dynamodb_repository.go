package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultInvoicesTableName = "invoices"
	invoicesIDIndex          = "invoice_id-index"

	// One transaction holds the invoice delete plus one restore per line.
	maxTransactItems = 100
)

type invoiceItem struct {
	ID            string         `dynamodbav:"id"`
	AppointmentID string         `dynamodbav:"appointment_id"`
	TaxPercentage string         `dynamodbav:"tax_percentage"`
	LabourCost    string         `dynamodbav:"labour_cost"`
	UsedParts     map[string]int `dynamodbav:"used_parts"`
	Mechanics     []string       `dynamodbav:"mechanics"`
	Version       int64          `dynamodbav:"version"`
	CreatedAt     string         `dynamodbav:"created_at"`
	UpdatedAt     string         `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: appointment_id (string)
//   - GSI: invoice_id-index (PK: id)
//
// We use the appointment id as PK so a conditional put guarantees 1 invoice per
// appointment. Part changes write the invoice line and the inventory row in one
// TransactWriteItems call.

type InvoiceDynamoRepository struct {
	ddb            DynamoDBAPI
	tableName      string
	inventoryTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoDBAPI, tableName, inventoryTable string) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:            ddb,
		tableName:      tableOr(tableName, defaultInvoicesTableName),
		inventoryTable: tableOr(inventoryTable, defaultInventoryTableName),
	}
}

func (r *InvoiceDynamoRepository) CreateIfAbsent(ctx context.Context, inv entities.Invoice) (entities.Invoice, bool, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#appointment_id)"),
		ExpressionAttributeNames: map[string]string{
			"#appointment_id": "appointment_id",
		},
	})
	if err == nil {
		return inv, true, nil
	}
	if !isConditionalCheckFailed(err) {
		return entities.Invoice{}, false, err
	}

	existing, err := r.GetByAppointmentID(ctx, inv.AppointmentID)
	if err != nil {
		return entities.Invoice{}, false, err
	}
	return existing, false, nil
}

// GetByID resolves the appointment id through the GSI, then reads the item consistently.
func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesIDIndex),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	inv, err := r.GetByAppointmentID(ctx, it.AppointmentID)
	if err != nil {
		return entities.Invoice{}, err
	}
	// The index lags behind deletes and re-creations.
	if inv.ID != id {
		return entities.Invoice{}, nil
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByAppointmentID(ctx context.Context, appointmentID string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            invoiceKey(appointmentID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// UpdateCharges sets labour cost and tax percentage in one UpdateItem, so a
// request carrying both lands both or neither.
func (r *InvoiceDynamoRepository) UpdateCharges(ctx context.Context, appointmentID string, charges interfaces.ChargesUpdate) (entities.Invoice, error) {
	return r.update(ctx, appointmentID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		sets := []string{"#updated_at = :updated_at"}
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{"#updated_at": "updated_at"}
		if charges.LabourCost != nil {
			sets = append(sets, "#labour_cost = :labour_cost")
			vals[":labour_cost"] = &types.AttributeValueMemberS{Value: charges.LabourCost.String()}
			names["#labour_cost"] = "labour_cost"
		}
		if charges.TaxPercentage != nil {
			sets = append(sets, "#tax_percentage = :tax_percentage")
			vals[":tax_percentage"] = &types.AttributeValueMemberS{Value: charges.TaxPercentage.String()}
			names["#tax_percentage"] = "tax_percentage"
		}
		return "SET " + strings.Join(sets, ", ") + " ADD #version :one", vals, names
	})
}

func (r *InvoiceDynamoRepository) UpdateMechanics(ctx context.Context, appointmentID string, mechanicIDs []string) (entities.Invoice, error) {
	mechanics, err := attributevalue.Marshal(append([]string{}, mechanicIDs...))
	if err != nil {
		return entities.Invoice{}, err
	}
	return r.update(ctx, appointmentID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #mechanics = :mechanics, #updated_at = :updated_at ADD #version :one"
		vals := map[string]types.AttributeValue{
			":mechanics":  mechanics,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#mechanics":  "mechanics",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *InvoiceDynamoRepository) update(
	ctx context.Context,
	appointmentID string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Invoice, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)
	values[":one"] = &types.AttributeValueMemberN{Value: "1"}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       invoiceKey(appointmentID),
		ConditionExpression:       aws.String("attribute_exists(#appointment_id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#appointment_id": "appointment_id", "#version": "version"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, nil
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// ApplyPartChange writes the used-part line and moves inventory by change.Delta()
// in one transaction. Item 0 is the invoice line, item 1 the inventory row.
func (r *InvoiceDynamoRepository) ApplyPartChange(ctx context.Context, appointmentID string, change interfaces.PartChange) (entities.Invoice, error) {
	delta := change.Delta()
	if delta == 0 {
		return r.GetByAppointmentID(ctx, appointmentID)
	}

	now := formatTime(time.Now())
	names := map[string]string{
		"#appointment_id": "appointment_id",
		"#used_parts":     "used_parts",
		"#pid":            change.PartID,
		"#version":        "version",
		"#updated_at":     "updated_at",
	}
	values := map[string]types.AttributeValue{
		":one":        &types.AttributeValueMemberN{Value: "1"},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}

	cond := "attribute_exists(#appointment_id) AND "
	if change.ExpectedCount == 0 {
		cond += "attribute_not_exists(#used_parts.#pid)"
	} else {
		cond += "#used_parts.#pid = :expected"
		values[":expected"] = numberValue(change.ExpectedCount)
	}

	var updateExpr string
	if change.NewCount == 0 {
		updateExpr = "REMOVE #used_parts.#pid SET #updated_at = :updated_at ADD #version :one"
	} else {
		updateExpr = "SET #used_parts.#pid = :count, #updated_at = :updated_at ADD #version :one"
		values[":count"] = numberValue(change.NewCount)
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       invoiceKey(appointmentID),
				ConditionExpression:       aws.String(cond),
				UpdateExpression:          aws.String(updateExpr),
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			}},
			{Update: inventoryMove(r.inventoryTable, change.PartID, delta)},
		},
	})
	if err != nil {
		if failed, conflict, ok := cancelledItems(err); ok {
			switch {
			case failed[1]:
				return entities.Invoice{}, fmt.Errorf("%w: part %s", entities.ErrInsufficientStock, change.PartID)
			case failed[0] || conflict:
				return entities.Invoice{}, interfaces.ErrConditionFailed
			}
		}
		return entities.Invoice{}, err
	}
	return r.GetByAppointmentID(ctx, appointmentID)
}

// Delete removes inv while its version is unchanged and restores every used part.
func (r *InvoiceDynamoRepository) Delete(ctx context.Context, inv entities.Invoice) error {
	if len(inv.UsedParts)+1 > maxTransactItems {
		return fmt.Errorf("invoice %s has %d part lines, more than one transaction can restore", inv.ID, len(inv.UsedParts))
	}

	items := []types.TransactWriteItem{
		{Delete: &types.Delete{
			TableName:           aws.String(r.tableName),
			Key:                 invoiceKey(inv.AppointmentID),
			ConditionExpression: aws.String("#version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#version": "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(inv.Version, 10)},
			},
		}},
	}
	for _, partID := range inv.PartIDs() {
		items = append(items, types.TransactWriteItem{
			Update: inventoryMove(r.inventoryTable, partID, -inv.UsedParts[partID]),
		})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, conflict, ok := cancelledItems(err); ok && (failed[0] || conflict) {
			return interfaces.ErrConditionFailed
		}
		return err
	}
	return nil
}

func invoiceKey(appointmentID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"appointment_id": &types.AttributeValueMemberS{Value: appointmentID},
	}
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	usedParts := make(map[string]int, len(inv.UsedParts))
	for k, v := range inv.UsedParts {
		usedParts[k] = v
	}
	mechanics := append([]string{}, inv.Mechanics...)
	return invoiceItem{
		ID:            inv.ID,
		AppointmentID: inv.AppointmentID,
		TaxPercentage: inv.TaxPercentage.String(),
		LabourCost:    inv.LabourCost.String(),
		UsedParts:     usedParts,
		Mechanics:     mechanics,
		Version:       inv.Version,
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	tax, _ := decimal.NewFromString(it.TaxPercentage)
	labour, _ := decimal.NewFromString(it.LabourCost)
	usedParts := it.UsedParts
	if usedParts == nil {
		usedParts = map[string]int{}
	}
	mechanics := it.Mechanics
	if mechanics == nil {
		mechanics = []string{}
	}
	return entities.Invoice{
		ID:            it.ID,
		AppointmentID: it.AppointmentID,
		TaxPercentage: tax,
		LabourCost:    labour,
		UsedParts:     usedParts,
		Mechanics:     mechanics,
		Version:       it.Version,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
