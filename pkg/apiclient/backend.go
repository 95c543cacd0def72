package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/persistence"
)

func artifactPath(journey models.JourneyType, id string) string {
	return "/" + string(journey) + "/" + url.PathEscape(id)
}

func wrap(op string, journey models.JourneyType, id string, err error) error {
	switch statusOf(err) {
	case http.StatusNotFound:
		return persistence.NewArtifactError(op, journey, id, persistence.ErrArtifactNotFound)
	case http.StatusConflict:
		return persistence.NewArtifactError(op, journey, id, persistence.ErrArtifactClosed)
	default:
		return err
	}
}

func (c *Client) Find(ctx context.Context, token string, journey models.JourneyType, id string) (*models.Artifact, error) {
	var artifact models.Artifact

	err := c.do(ctx, http.MethodGet, artifactPath(journey, id), token, nil, &artifact)
	if err != nil {
		return nil, wrap("Find", journey, id, err)
	}

	artifact.Type = journey

	return &artifact, nil
}

func (c *Client) List(ctx context.Context, token string, journey models.JourneyType) ([]*models.Artifact, error) {
	artifacts := make([]*models.Artifact, 0)

	err := c.do(ctx, http.MethodGet, "/"+string(journey), token, nil, &artifacts)
	if err != nil {
		return nil, err
	}

	for _, a := range artifacts {
		a.Type = journey
	}

	return artifacts, nil
}

type createRequest struct {
	CRN           string `json:"crn"`
	ApplicationID string `json:"applicationId,omitempty"`
}

func (c *Client) Create(ctx context.Context, token string, artifact *models.Artifact) error {
	in := createRequest{CRN: artifact.Person.CRN, ApplicationID: artifact.ApplicationID}

	return c.do(ctx, http.MethodPost, "/"+string(artifact.Type), token, in, artifact)
}

type updateRequest struct {
	Data models.Data `json:"data"`
}

func (c *Client) Update(ctx context.Context, token string, artifact *models.Artifact) error {
	err := c.do(ctx, http.MethodPut, artifactPath(artifact.Type, artifact.ID), token, updateRequest{Data: artifact.Data}, nil)
	if err != nil {
		return wrap("Update", artifact.Type, artifact.ID, err)
	}

	return nil
}

type submitRequest struct {
	Data     models.Data     `json:"data"`
	Document models.Document `json:"document"`
	Decision string          `json:"decision,omitempty"`
}

func (c *Client) Submit(ctx context.Context, token string, artifact *models.Artifact) error {
	in := submitRequest{Data: artifact.Data, Document: artifact.Document, Decision: artifact.Decision}

	err := c.do(ctx, http.MethodPost, artifactPath(artifact.Type, artifact.ID)+"/submission", token, in, nil)
	if err != nil {
		return wrap("Submit", artifact.Type, artifact.ID, err)
	}

	artifact.Status = models.ArtifactStatusSubmitted

	return nil
}

type withdrawRequest struct {
	Reason string `json:"reason"`
}

func (c *Client) Withdraw(ctx context.Context, token string, journey models.JourneyType, id, reason string) error {
	err := c.do(ctx, http.MethodPost, artifactPath(journey, id)+"/withdrawal", token, withdrawRequest{Reason: reason}, nil)
	if err != nil {
		return wrap("Withdraw", journey, id, err)
	}

	return nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *Client) Close(_ context.Context) error {
	c.http.CloseIdleConnections()

	return nil
}

var _ persistence.Backend = (*Client)(nil)
