// Package storage persists submissions and site content in a document
// store. The production backend is a single DynamoDB table; a JSON-file
// backend serves local development and tests.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rishiv/portfolio-api/internal/config"
	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/site"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store is the document-store surface the rest of the service depends on.
type Store interface {
	// CreateSubmission assigns an ID and writes the submission. The ID is
	// immutable once assigned.
	CreateSubmission(ctx context.Context, sub *contact.Submission) error
	// ListSubmissions returns up to limit submissions, newest first.
	ListSubmissions(ctx context.Context, limit int) ([]contact.Submission, error)
	// UpdateSubmissionStatus sets the status and update timestamp of one
	// submission. Returns ErrNotFound for an unknown ID.
	UpdateSubmissionStatus(ctx context.Context, id, status string) error

	SiteConfig(ctx context.Context) (*site.Config, error)
	PutSiteConfig(ctx context.Context, cfg *site.Config) error
	ListProjects(ctx context.Context) ([]site.Project, error)
	PutProject(ctx context.Context, p *site.Project) error
	ListSocials(ctx context.Context) ([]site.Social, error)
	PutSocial(ctx context.Context, s *site.Social) error
	ListServices(ctx context.Context) ([]site.Service, error)
	PutService(ctx context.Context, s *site.Service) error
	Resume(ctx context.Context) (*site.Resume, error)
	PutResume(ctx context.Context, r *site.Resume) error
	ListPosts(ctx context.Context) ([]site.Post, error)
	GetPost(ctx context.Context, id string) (*site.Post, error)
	PutPost(ctx context.Context, p *site.Post) error
}

// New creates the store selected by configuration: "aws" for DynamoDB,
// "local" for the JSON-file store.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "aws":
		return NewDynamoStore(ctx, cfg.DynamoDBTable, cfg.AWSRegion, cfg.GetAWSProfile())
	case "local":
		return NewLocalStore(cfg.LocalPath)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
