// Package dynamotest provides an in-memory DynamoDB stand-in for tests.
//
// It understands the expression subset the stores emit: SET update
// expressions, equality comparisons, attribute_exists and
// attribute_not_exists joined with AND. Anything else is reported as an
// error so a test fails loudly instead of silently passing.
package dynamotest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	key   string
	order []string
	items map[string]map[string]types.AttributeValue
}

// Fake is a concurrency-safe in-memory DynamoDB.
type Fake struct {
	mu     sync.Mutex
	tables map[string]*table
	err    error

	Calls map[string]int
}

// New returns an empty Fake with no tables.
func New() *Fake {
	return &Fake{
		tables: map[string]*table{},
		Calls:  map[string]int{},
	}
}

// CreateTable registers a table whose partition key is keyAttr.
func (f *Fake) CreateTable(name, keyAttr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{key: keyAttr, items: map[string]map[string]types.AttributeValue{}}
}

// FailWith makes every following call return err. nil restores normal behaviour.
func (f *Fake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Item returns a copy of the stored item, or nil.
func (f *Fake) Item(tableName, key string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableName]
	if !ok {
		return nil
	}
	return clone(t.items[key])
}

// Len returns the number of items in a table.
func (f *Fake) Len(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// Seed stores item directly, bypassing expressions.
func (f *Fake) Seed(tableName string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[tableName]
	pk := item[t.key].(*types.AttributeValueMemberS).Value
	t.put(pk, item)
}

func (t *table) put(pk string, item map[string]types.AttributeValue) {
	if _, exists := t.items[pk]; !exists {
		t.order = append(t.order, pk)
	}
	t.items[pk] = clone(item)
}

func (t *table) remove(pk string) {
	if _, exists := t.items[pk]; !exists {
		return
	}
	delete(t.items, pk)
	for i, k := range t.order {
		if k == pk {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (f *Fake) begin(op string, tableName *string) (*table, error) {
	f.Calls[op]++
	if f.err != nil {
		return nil, f.err
	}
	if tableName == nil {
		return nil, errors.New("missing table name")
	}
	t, ok := f.tables[*tableName]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: strPtr("Requested resource not found: " + *tableName)}
	}
	return t, nil
}

func (t *table) keyOf(m map[string]types.AttributeValue) (string, error) {
	v, ok := m[t.key].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing key attribute %q", t.key)
	}
	return v.Value, nil
}

// PutItem implements the DynamoDB PutItem call.
func (f *Fake) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.begin("PutItem", params.TableName)
	if err != nil {
		return nil, err
	}
	pk, err := t.keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil {
		ok, err := evalCondition(*params.ConditionExpression, t.items[pk], params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, conditionFailed()
		}
	}
	t.put(pk, params.Item)
	return &dyn.PutItemOutput{}, nil
}

// GetItem implements the DynamoDB GetItem call.
func (f *Fake) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.begin("GetItem", params.TableName)
	if err != nil {
		return nil, err
	}
	pk, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: clone(item)}, nil
}

// UpdateItem implements SET-only update expressions.
func (f *Fake) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.begin("UpdateItem", params.TableName)
	if err != nil {
		return nil, err
	}
	pk, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	current := t.items[pk]
	if params.ConditionExpression != nil {
		ok, err := evalCondition(*params.ConditionExpression, current, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, conditionFailed()
		}
	}
	if params.UpdateExpression == nil {
		return nil, errors.New("missing update expression")
	}

	next := clone(current)
	if next == nil {
		// DynamoDB upserts when no condition prevents it
		next = clone(params.Key)
	}
	updated, err := applySet(*params.UpdateExpression, next, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	t.put(pk, next)

	out := &dyn.UpdateItemOutput{}
	switch params.ReturnValues {
	case types.ReturnValueAllNew:
		out.Attributes = clone(next)
	case types.ReturnValueUpdatedNew:
		out.Attributes = map[string]types.AttributeValue{}
		for _, name := range updated {
			out.Attributes[name] = next[name]
		}
	}
	return out, nil
}

// DeleteItem implements an unconditional delete; deleting a missing key succeeds.
func (f *Fake) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.begin("DeleteItem", params.TableName)
	if err != nil {
		return nil, err
	}
	pk, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	t.remove(pk)
	return &dyn.DeleteItemOutput{}, nil
}

// Scan returns every item in insertion order, filtered by FilterExpression.
// Results are never paginated.
func (f *Fake) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.begin("Scan", params.TableName)
	if err != nil {
		return nil, err
	}
	out := &dyn.ScanOutput{}
	for _, pk := range t.order {
		item := t.items[pk]
		out.ScannedCount++
		if params.FilterExpression != nil {
			ok, err := evalCondition(*params.FilterExpression, item, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out.Items = append(out.Items, clone(item))
		out.Count++
	}
	return out, nil
}

func evalCondition(expr string, item map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	for _, clause := range strings.Split(expr, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "attribute_exists(") && strings.HasSuffix(clause, ")"):
			attr := resolve(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_exists("), ")"), names)
			if _, ok := item[attr]; !ok {
				return false, nil
			}
		case strings.HasPrefix(clause, "attribute_not_exists(") && strings.HasSuffix(clause, ")"):
			attr := resolve(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_not_exists("), ")"), names)
			if _, ok := item[attr]; ok {
				return false, nil
			}
		case strings.Contains(clause, " = "):
			parts := strings.SplitN(clause, " = ", 2)
			attr := resolve(strings.TrimSpace(parts[0]), names)
			want, ok := values[strings.TrimSpace(parts[1])]
			if !ok {
				return false, fmt.Errorf("unknown expression value %q", parts[1])
			}
			got, ok := item[attr]
			if !ok || !equal(got, want) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported condition %q", clause)
		}
	}
	return true, nil
}

func applySet(expr string, item map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if len(expr) < 4 || !strings.EqualFold(expr[:4], "SET ") {
		return nil, fmt.Errorf("unsupported update expression %q", expr)
	}
	var updated []string
	for _, assignment := range strings.Split(expr[4:], ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed assignment %q", assignment)
		}
		attr := resolve(strings.TrimSpace(parts[0]), names)
		v, ok := values[strings.TrimSpace(parts[1])]
		if !ok {
			return nil, fmt.Errorf("unknown expression value %q", parts[1])
		}
		item[attr] = v
		updated = append(updated, attr)
	}
	return updated, nil
}

func resolve(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		if n, ok := names[token]; ok {
			return n
		}
	}
	return token
}

func equal(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return reflect.DeepEqual(a, b)
}

func clone(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: strPtr("The conditional request failed")}
}

func strPtr(s string) *string { return &s }
