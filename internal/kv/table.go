// Package kv is the single-table access layer shared by the menu, order and
// reservation stores. Every table is keyed by a string attribute "id".
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
)

// KeyAttribute is the partition key of every table.
const KeyAttribute = "id"

// ErrConditionFailed is returned by Update when an expected field did not match.
var ErrConditionFailed = errors.New("conditional check failed")

// Field is an attribute name and value used in updates and equality filters.
type Field struct {
	Name  string
	Value interface{}
}

// Table binds a DynamoDB client to one table.
type Table struct {
	client aws.DynamoDBAPI
	name   string
}

// NewTable returns a Table for name.
func NewTable(client aws.DynamoDBAPI, name string) *Table {
	return &Table{client: client, name: name}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyAttribute: &types.AttributeValueMemberS{Value: id},
	}
}

// Get loads the item with id into out. apperr.ErrNotFound when absent.
func (t *Table) Get(ctx context.Context, id string, out interface{}) error {
	res, err := t.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &t.name,
		Key:       key(id),
	})
	if err != nil {
		return apperr.Store("get item", err)
	}
	if len(res.Item) == 0 {
		return apperr.ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return apperr.Store("unmarshal item", err)
	}
	return nil
}

// Put writes item unconditionally.
func (t *Table) Put(ctx context.Context, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperr.Store("marshal item", err)
	}
	_, err = t.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &t.name,
		Item:      av,
	})
	return apperr.Store("put item", err)
}

// Update SETs fields on an existing item and unmarshals the new image into out.
// The write is conditional on the item existing and, when expect is non-nil,
// on expect.Name currently equalling expect.Value.
// A missing item yields apperr.ErrNotFound. With expect set, a failed
// condition is followed by a read so that a vanished item still reports
// apperr.ErrNotFound and a changed one reports ErrConditionFailed.
func (t *Table) Update(ctx context.Context, id string, set []Field, expect *Field, out interface{}) error {
	if len(set) == 0 {
		return errors.New("update: no fields")
	}
	names := map[string]string{"#pk": KeyAttribute}
	values := map[string]types.AttributeValue{}
	assignments := make([]string, 0, len(set))
	for i, f := range set {
		av, err := attributevalue.Marshal(f.Value)
		if err != nil {
			return apperr.Store("marshal "+f.Name, err)
		}
		n, v := fmt.Sprintf("#f%d", i), fmt.Sprintf(":v%d", i)
		names[n] = f.Name
		values[v] = av
		assignments = append(assignments, n+" = "+v)
	}
	cond := "attribute_exists(#pk)"
	if expect != nil {
		av, err := attributevalue.Marshal(expect.Value)
		if err != nil {
			return apperr.Store("marshal "+expect.Name, err)
		}
		names["#expected"] = expect.Name
		values[":expected"] = av
		cond += " AND #expected = :expected"
	}
	updateExpr := "SET " + strings.Join(assignments, ", ")

	res, err := t.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 &t.name,
		Key:                       key(id),
		UpdateExpression:          &updateExpr,
		ConditionExpression:       &cond,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if expect == nil {
				return apperr.ErrNotFound
			}
			var current map[string]interface{}
			if gerr := t.Get(ctx, id, &current); errors.Is(gerr, apperr.ErrNotFound) {
				return apperr.ErrNotFound
			}
			return ErrConditionFailed
		}
		return apperr.Store("update item", err)
	}
	if err := attributevalue.UnmarshalMap(res.Attributes, out); err != nil {
		return apperr.Store("unmarshal item", err)
	}
	return nil
}

// Delete removes id without checking that it exists.
func (t *Table) Delete(ctx context.Context, id string) error {
	_, err := t.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &t.name,
		Key:       key(id),
	})
	return apperr.Store("delete item", err)
}

// Scan reads the whole table, following pagination, and keeps the items
// whose attributes equal every filter value. Empty filter values are ignored.
func Scan[T any](ctx context.Context, t *Table, filters ...Field) ([]T, error) {
	input := &dyn.ScanInput{TableName: &t.name}

	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	for i, f := range filters {
		if s, ok := f.Value.(string); ok && s == "" {
			continue
		}
		av, err := attributevalue.Marshal(f.Value)
		if err != nil {
			return nil, apperr.Store("marshal "+f.Name, err)
		}
		n, v := fmt.Sprintf("#f%d", i), fmt.Sprintf(":f%d", i)
		names[n] = f.Name
		values[v] = av
		clauses = append(clauses, n+" = "+v)
	}
	if len(clauses) > 0 {
		expr := strings.Join(clauses, " AND ")
		input.FilterExpression = &expr
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	out := []T{}
	p := dyn.NewScanPaginator(t.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apperr.Store("scan", err)
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, apperr.Store("unmarshal items", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}
