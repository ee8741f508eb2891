package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultAppointmentsTableName = "appointments"

type appointmentItem struct {
	ID          string   `dynamodbav:"id"`
	CustomerID  string   `dynamodbav:"customer_id"`
	VehicleID   string   `dynamodbav:"vehicle_id"`
	ServiceIDs  []string `dynamodbav:"service_ids"`
	ScheduledAt string   `dynamodbav:"scheduled_at"`
	Status      string   `dynamodbav:"status"`
	CreatedAt   string   `dynamodbav:"created_at"`
	UpdatedAt   string   `dynamodbav:"updated_at"`
}

// AppointmentDynamoRepository persists Appointment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Status and schedule writes are conditional on the status read by the caller.

type AppointmentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IAppointmentRepository = (*AppointmentDynamoRepository)(nil)

func NewAppointmentDynamoRepository(ddb DynamoDBAPI, tableName string) *AppointmentDynamoRepository {
	return &AppointmentDynamoRepository{
		ddb:       ddb,
		tableName: tableOr(tableName, defaultAppointmentsTableName),
	}
}

func (r *AppointmentDynamoRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	av, err := attributevalue.MarshalMap(toAppointmentItem(a))
	if err != nil {
		return entities.Appointment{}, err
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
			return entities.Appointment{}, interfaces.ErrConditionFailed
		}
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Appointment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Appointment{}, nil
	}

	var it appointmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) List(ctx context.Context, filter interfaces.AppointmentFilter) ([]entities.Appointment, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if filter.CustomerID != "" {
		conds = append(conds, "#customer_id = :customer_id")
		names["#customer_id"] = "customer_id"
		values[":customer_id"] = &types.AttributeValueMemberS{Value: filter.CustomerID}
	}
	if filter.VehicleID != "" {
		conds = append(conds, "#vehicle_id = :vehicle_id")
		names["#vehicle_id"] = "vehicle_id"
		values[":vehicle_id"] = &types.AttributeValueMemberS{Value: filter.VehicleID}
	}
	if filter.Status != "" {
		conds = append(conds, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}
	if filter.ServiceID != "" {
		conds = append(conds, "contains(#service_ids, :service_id)")
		names["#service_ids"] = "service_ids"
		values[":service_id"] = &types.AttributeValueMemberS{Value: filter.ServiceID}
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	items := []entities.Appointment{}
	pages := dynamodb.NewScanPaginator(r.ddb, input)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan appointments: %w", err)
		}
		for _, raw := range page.Items {
			var it appointmentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			// scheduled_at is not fixed width, so the range is checked here.
			if a := fromAppointmentItem(it); filter.Matches(a) {
				items = append(items, a)
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
	return items, nil
}

func (r *AppointmentDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.AppointmentStatus) (entities.Appointment, error) {
	return r.update(ctx, id, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *AppointmentDynamoRepository) UpdateScheduledAt(ctx context.Context, id string, expected entities.AppointmentStatus, scheduledAt time.Time) (entities.Appointment, error) {
	return r.update(ctx, id, expected, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #scheduled_at = :scheduled_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":scheduled_at": &types.AttributeValueMemberS{Value: formatTime(scheduledAt)},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#scheduled_at": "scheduled_at",
			"#updated_at":   "updated_at",
		}
		return expr, vals, names
	})
}

// update applies build only while the stored status equals expected.
func (r *AppointmentDynamoRepository) update(
	ctx context.Context,
	id string,
	expected entities.AppointmentStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Appointment, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)
	values[":expected_status"] = &types.AttributeValueMemberS{Value: string(expected)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :expected_status"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Appointment{}, interfaces.ErrConditionFailed
		}
		return entities.Appointment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Appointment{}, nil
	}
	var it appointmentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func toAppointmentItem(a entities.Appointment) appointmentItem {
	return appointmentItem{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		VehicleID:   a.VehicleID,
		ServiceIDs:  append([]string{}, a.ServiceIDs...),
		ScheduledAt: formatTime(a.ScheduledAt),
		Status:      string(a.Status),
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

func fromAppointmentItem(it appointmentItem) entities.Appointment {
	serviceIDs := it.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}
	return entities.Appointment{
		ID:          it.ID,
		CustomerID:  it.CustomerID,
		VehicleID:   it.VehicleID,
		ServiceIDs:  serviceIDs,
		ScheduledAt: parseTime(it.ScheduledAt),
		Status:      entities.AppointmentStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
