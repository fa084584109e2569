package dynamotest

import (
	"context"
	"errors"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func s(v string) *types.AttributeValueMemberS { return &types.AttributeValueMemberS{Value: v} }

func str(v string) *string { return &v }

func TestFake_ConditionalUpdateAndScan(t *testing.T) {
	f := New()
	f.CreateTable("t", "id")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		status := "pending"
		if id == "b" {
			status = "done"
		}
		_, err := f.PutItem(ctx, &dyn.PutItemInput{
			TableName: str("t"),
			Item:      map[string]types.AttributeValue{"id": s(id), "status": s(status)},
		})
		if err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	out, err := f.Scan(ctx, &dyn.ScanInput{
		TableName:                 str("t"),
		FilterExpression:          str("#s = :s"),
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":s": s("pending")},
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if out.Count != 2 || out.Items[0]["id"].(*types.AttributeValueMemberS).Value != "a" {
		t.Fatalf("unexpected scan result %+v", out.Items)
	}

	_, err = f.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 str("t"),
		Key:                       map[string]types.AttributeValue{"id": s("missing")},
		UpdateExpression:          str("SET #s = :s"),
		ConditionExpression:       str("attribute_exists(#pk)"),
		ExpressionAttributeNames:  map[string]string{"#s": "status", "#pk": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":s": s("x")},
	})
	var ccf *types.ConditionalCheckFailedException
	if !errors.As(err, &ccf) {
		t.Fatalf("expected conditional failure, got %v", err)
	}
	if f.Len("t") != 3 {
		t.Fatalf("failed update must not upsert")
	}
}

func TestFake_MissingTableAndFailWith(t *testing.T) {
	f := New()
	_, err := f.GetItem(context.Background(), &dyn.GetItemInput{TableName: str("nope"), Key: map[string]types.AttributeValue{"id": s("1")}})
	var rnf *types.ResourceNotFoundException
	if !errors.As(err, &rnf) {
		t.Fatalf("expected ResourceNotFoundException, got %v", err)
	}

	f.CreateTable("t", "id")
	boom := errors.New("boom")
	f.FailWith(boom)
	if _, err := f.DeleteItem(context.Background(), &dyn.DeleteItemInput{TableName: str("t"), Key: map[string]types.AttributeValue{"id": s("1")}}); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}
