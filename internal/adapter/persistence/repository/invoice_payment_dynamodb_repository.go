package repository

import (
	"context"
	"encoding/json"
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
	defaultPaymentsTableName = "invoice_payments"
	paymentsInvoiceIDIndex   = "invoice_id-index"
)

type invoicePaymentItem struct {
	ID            string                 `dynamodbav:"id"`
	InvoiceID     string                 `dynamodbav:"invoice_id"`
	AppointmentID string                 `dynamodbav:"appointment_id"`
	Amount        string                 `dynamodbav:"amount"`
	Date          string                 `dynamodbav:"date"`
	Status        string                 `dynamodbav:"status"`
	MPPayload     map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw  string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// InvoicePaymentDynamoRepository persists InvoicePayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id)

type InvoicePaymentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentDynamoRepository)(nil)

func NewInvoicePaymentDynamoRepository(ddb DynamoDBAPI, tableName string) *InvoicePaymentDynamoRepository {
	return &InvoicePaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableOr(tableName, defaultPaymentsTableName),
	}
}

func (r *InvoicePaymentDynamoRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	av, err := attributevalue.MarshalMap(toInvoicePaymentItem(p))
	if err != nil {
		return entities.InvoicePayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.InvoicePayment{}, interfaces.ErrConditionFailed
		}
		return entities.InvoicePayment{}, err
	}
	return p, nil
}

func (r *InvoicePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.InvoicePayment{}, nil
	}

	var it invoicePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.InvoicePayment{}, err
	}
	return fromInvoicePaymentItem(it), nil
}

func (r *InvoicePaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsInvoiceIDIndex),
		KeyConditionExpression: aws.String("invoice_id = :iid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: invoiceID},
		},
	})

	items := []entities.InvoicePayment{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it invoicePaymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromInvoicePaymentItem(it))
		}
	}
	return items, nil
}

func toInvoicePaymentItem(p entities.InvoicePayment) invoicePaymentItem {
	return invoicePaymentItem{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		AppointmentID: p.AppointmentID,
		Amount:        p.Amount.StringFixed(entities.CurrencyPrecision),
		Date:          p.Date.UTC().Format(time.RFC3339Nano),
		Status:        string(p.Status),
		MPPayload:     p.MPPayload,
		MPPayloadRaw:  string(p.MPPayloadRaw),
	}
}

func fromInvoicePaymentItem(it invoicePaymentItem) entities.InvoicePayment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	amount, _ := decimal.NewFromString(it.Amount)
	var raw json.RawMessage
	if it.MPPayloadRaw != "" {
		raw = json.RawMessage(it.MPPayloadRaw)
	}
	return entities.InvoicePayment{
		ID:            it.ID,
		InvoiceID:     it.InvoiceID,
		AppointmentID: it.AppointmentID,
		Amount:        amount,
		Date:          dt,
		Status:        entities.PaymentStatus(it.Status),
		MPPayload:     it.MPPayload,
		MPPayloadRaw:  raw,
	}
}
