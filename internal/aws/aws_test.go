package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type mockSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, params)
	return &sqs.SendMessageOutput{}, nil
}

type mockCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestPublisher_Publish(t *testing.T) {
	mock := &mockSQS{}
	p := NewPublisher(mock, "https://sqs.local/queue")

	payload := map[string]string{"order_id": "o1", "status": "pending"}
	err := p.Publish(context.Background(), payload, map[string]string{"event_type": "order.created", "empty": ""})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mock.inputs))
	}
	in := mock.inputs[0]
	if *in.QueueUrl != "https://sqs.local/queue" {
		t.Fatalf("queue url mismatch: %s", *in.QueueUrl)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if got["order_id"] != "o1" {
		t.Fatalf("unexpected body %v", got)
	}
	if _, ok := in.MessageAttributes["empty"]; ok {
		t.Fatalf("empty attribute should be skipped")
	}
	if v := in.MessageAttributes["event_type"].StringValue; v == nil || *v != "order.created" {
		t.Fatalf("event_type attribute missing")
	}
}

func TestPublisher_SendError(t *testing.T) {
	p := NewPublisher(&mockSQS{err: errors.New("boom")}, "q")
	if err := p.Publish(context.Background(), map[string]string{}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestMetrics_Count(t *testing.T) {
	cw := &mockCloudWatch{}
	m := NewMetrics(cw, "Restaurant")

	if err := m.Count(context.Background(), "OrderEvents", 1, map[string]string{"Status": "pending"}); err != nil {
		t.Fatalf("count: %v", err)
	}
	if len(cw.inputs) != 1 {
		t.Fatalf("expected 1 call, got %d", len(cw.inputs))
	}
	in := cw.inputs[0]
	if *in.Namespace != "Restaurant" {
		t.Fatalf("namespace mismatch")
	}
	d := in.MetricData[0]
	if *d.MetricName != "OrderEvents" || *d.Value != 1 || d.Unit != cwtypes.StandardUnitCount {
		t.Fatalf("unexpected datum %+v", d)
	}
	if len(d.Dimensions) != 1 || *d.Dimensions[0].Name != "Status" || *d.Dimensions[0].Value != "pending" {
		t.Fatalf("unexpected dimensions %+v", d.Dimensions)
	}
}

func TestMetrics_CountSkipsEmptyDimensions(t *testing.T) {
	cw := &mockCloudWatch{}
	m := NewMetrics(cw, "Restaurant")

	dims := map[string]string{"Status": "", "EventType": "order.created"}
	if err := m.Count(context.Background(), "OrderEvents", 1, dims); err != nil {
		t.Fatalf("count: %v", err)
	}
	d := cw.inputs[0].MetricData[0]
	if len(d.Dimensions) != 1 || *d.Dimensions[0].Name != "EventType" {
		t.Fatalf("expected only the EventType dimension, got %+v", d.Dimensions)
	}
}
