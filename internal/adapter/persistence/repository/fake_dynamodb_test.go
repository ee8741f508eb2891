package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoDB records inputs and replays canned outputs.
type fakeDynamoDB struct {
	putInputs      []*dynamodb.PutItemInput
	getInputs      []*dynamodb.GetItemInput
	updateInputs   []*dynamodb.UpdateItemInput
	queryInputs    []*dynamodb.QueryInput
	scanInputs     []*dynamodb.ScanInput
	transactInputs []*dynamodb.TransactWriteItemsInput

	putErr      error
	getItems    []map[string]types.AttributeValue
	getErr      error
	updateOut   map[string]types.AttributeValue
	updateErr   error
	queryItems  []map[string]types.AttributeValue
	scanItems   []map[string]types.AttributeValue
	transactErr error
}

var _ DynamoDBAPI = (*fakeDynamoDB)(nil)

func (f *fakeDynamoDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

// GetItem returns getItems in order, repeating the last one.
func (f *fakeDynamoDB) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getInputs = append(f.getInputs, in)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.getItems) == 0 {
		return &dynamodb.GetItemOutput{}, nil
	}
	idx := len(f.getInputs) - 1
	if idx >= len(f.getItems) {
		idx = len(f.getItems) - 1
	}
	return &dynamodb.GetItemOutput{Item: f.getItems[idx]}, nil
}

func (f *fakeDynamoDB) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateInputs = append(f.updateInputs, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamoDB) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, in)
	return &dynamodb.QueryOutput{Items: f.queryItems}, nil
}

func (f *fakeDynamoDB) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, in)
	return &dynamodb.ScanOutput{Items: f.scanItems}, nil
}

func (f *fakeDynamoDB) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transactInputs = append(f.transactInputs, in)
	return &dynamodb.TransactWriteItemsOutput{}, f.transactErr
}

func conditionalCheckFailedErr() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

// transactionCanceled builds a cancellation with one reason code per item ("None" when blank).
func transactionCanceled(codes ...string) error {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			c = "None"
		}
		reasons = append(reasons, types.CancellationReason{Code: aws.String(c)})
	}
	return &types.TransactionCanceledException{
		Message:             aws.String("Transaction cancelled, reasons [" + strings.Join(codes, ", ") + "]"),
		CancellationReasons: reasons,
	}
}

var errBoom = errors.New("boom")
