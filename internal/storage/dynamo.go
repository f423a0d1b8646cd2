package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/site"
)

// Partition keys in the single table. Submissions sort by a timestamped SK
// so a descending query returns newest first; everything else keys by ID.
const (
	pkContact = "CONTACT"
	pkSite    = "SITE"
	pkProject = "PROJECT"
	pkSocial  = "SOCIAL"
	pkService = "SERVICE"
	pkPost    = "POST"

	skSiteConfig = "config"
	skResume     = "resume"
)

// DynamoStore is the DynamoDB-backed document store.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

type keyedItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// NewDynamoStore creates a store against the given table. An empty profile
// uses the default credential chain (IAM role on ECS).
func NewDynamoStore(ctx context.Context, tableName, region, profile string) (*DynamoStore, error) {
	if tableName == "" {
		return nil, fmt.Errorf("dynamodb table name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &DynamoStore{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

func (s *DynamoStore) putItem(ctx context.Context, pk, sk string, doc any) error {
	av, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshaling item: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: pk}
	av["SK"] = &types.AttributeValueMemberS{Value: sk}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting item %s/%s: %w", pk, sk, err)
	}
	return nil
}

func (s *DynamoStore) getItem(ctx context.Context, pk, sk string, target any) error {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return fmt.Errorf("getting item %s/%s: %w", pk, sk, err)
	}
	if len(result.Item) == 0 {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(result.Item, target); err != nil {
		return fmt.Errorf("unmarshaling item %s/%s: %w", pk, sk, err)
	}
	return nil
}

// queryPartition reads every item under pk into a slice of T.
func queryPartition[T any](ctx context.Context, s *DynamoStore, pk string) ([]T, error) {
	var out []T
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: pk},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("querying partition %s: %w", pk, err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling partition %s: %w", pk, err)
		}
		out = append(out, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return out, nil
}

// CreateSubmission assigns a UUID, stamps timestamps, and writes the item
// with a creation-time-ordered sort key.
func (s *DynamoStore) CreateSubmission(ctx context.Context, sub *contact.Submission) error {
	sub.ID = uuid.NewString()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	sub.UpdatedAt = sub.CreatedAt

	sk := submissionSK(sub.CreatedAt, sub.ID)
	return s.putItem(ctx, pkContact, sk, sub)
}

func submissionSK(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(time.RFC3339Nano) + "#" + id
}

// ListSubmissions queries the contact partition in descending SK order, so
// the most recent submissions come back first.
func (s *DynamoStore) ListSubmissions(ctx context.Context, limit int) ([]contact.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pkContact},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}

	var subs []contact.Submission
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &subs); err != nil {
		return nil, fmt.Errorf("unmarshaling submissions: %w", err)
	}
	return subs, nil
}

// UpdateSubmissionStatus locates the item by its ID attribute, then updates
// status and update timestamp in place. The extra lookup is the price of
// the time-ordered sort key; with a single operator reviewing mail the
// partition stays small enough that this does not matter.
func (s *DynamoStore) UpdateSubmissionStatus(ctx context.Context, id, status string) error {
	sk, err := s.findSubmissionSK(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pkContact},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
		UpdateExpression: aws.String("SET #S = :status, UpdatedAt = :updated"),
		ExpressionAttributeNames: map[string]string{
			"#S": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: status},
			":updated": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("updating submission %s: %w", id, err)
	}
	return nil
}

func (s *DynamoStore) findSubmissionSK(ctx context.Context, id string) (string, error) {
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("PK = :pk"),
			FilterExpression:       aws.String("ID = :id"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: pkContact},
				":id": &types.AttributeValueMemberS{Value: id},
			},
			ProjectionExpression: aws.String("SK"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return "", fmt.Errorf("locating submission %s: %w", id, err)
		}

		if len(result.Items) > 0 {
			var item keyedItem
			if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
				return "", fmt.Errorf("unmarshaling submission key: %w", err)
			}
			return item.SK, nil
		}

		if result.LastEvaluatedKey == nil {
			return "", ErrNotFound
		}
		startKey = result.LastEvaluatedKey
	}
}

func (s *DynamoStore) SiteConfig(ctx context.Context) (*site.Config, error) {
	var cfg site.Config
	if err := s.getItem(ctx, pkSite, skSiteConfig, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *DynamoStore) PutSiteConfig(ctx context.Context, cfg *site.Config) error {
	cfg.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, pkSite, skSiteConfig, cfg)
}

func (s *DynamoStore) ListProjects(ctx context.Context) ([]site.Project, error) {
	return queryPartition[site.Project](ctx, s, pkProject)
}

func (s *DynamoStore) PutProject(ctx context.Context, p *site.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.putItem(ctx, pkProject, p.ID, p)
}

func (s *DynamoStore) ListSocials(ctx context.Context) ([]site.Social, error) {
	return queryPartition[site.Social](ctx, s, pkSocial)
}

func (s *DynamoStore) PutSocial(ctx context.Context, soc *site.Social) error {
	if soc.ID == "" {
		soc.ID = uuid.NewString()
	}
	return s.putItem(ctx, pkSocial, soc.ID, soc)
}

func (s *DynamoStore) ListServices(ctx context.Context) ([]site.Service, error) {
	return queryPartition[site.Service](ctx, s, pkService)
}

func (s *DynamoStore) PutService(ctx context.Context, svc *site.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	return s.putItem(ctx, pkService, svc.ID, svc)
}

func (s *DynamoStore) Resume(ctx context.Context) (*site.Resume, error) {
	var r site.Resume
	if err := s.getItem(ctx, pkSite, skResume, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *DynamoStore) PutResume(ctx context.Context, r *site.Resume) error {
	return s.putItem(ctx, pkSite, skResume, r)
}

// ListPosts returns every post, newest first. Posts key by slug, so the
// time ordering is applied after the read.
func (s *DynamoStore) ListPosts(ctx context.Context) ([]site.Post, error) {
	posts, err := queryPartition[site.Post](ctx, s, pkPost)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

func (s *DynamoStore) GetPost(ctx context.Context, id string) (*site.Post, error) {
	var p site.Post
	if err := s.getItem(ctx, pkPost, id, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *DynamoStore) PutPost(ctx context.Context, p *site.Post) error {
	if p.ID == "" {
		return fmt.Errorf("post ID is required")
	}
	return s.putItem(ctx, pkPost, p.ID, p)
}
