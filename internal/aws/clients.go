package aws

import (
	"context"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// AWSClients bundles the service clients shared by the API and the worker.
type AWSClients struct {
	DynamoDB   DynamoDBAPI
	SQS        SQSAPI
	CloudWatch CloudWatchAPI
}

// NewAWSClients loads AWS config and returns the service clients.
// DYNAMODB_ENDPOINT points only the DynamoDB client elsewhere, e.g. at
// DynamoDB Local on :8000 while SQS stays on AWS or LocalStack.
func NewAWSClients(ctx context.Context) (*AWSClients, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return newClients(cfg, os.Getenv("DYNAMODB_ENDPOINT")), nil
}

func newClients(cfg sdkaws.Config, dynamoEndpoint string) *AWSClients {
	var dynOpts []func(*dynamodb.Options)
	if dynamoEndpoint != "" {
		dynOpts = append(dynOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = sdkaws.String(dynamoEndpoint)
		})
	}
	return &AWSClients{
		DynamoDB:   dynamodb.NewFromConfig(cfg, dynOpts...),
		SQS:        sqs.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
	}
}
