package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/persistence"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const selectArtifact = `
	SELECT
		journey
	  , id
	  , crn
	  , person_name
	  , status
	  , data
	  , document
	  , risks
	  , outdated_schema
	  , decision
	  , application_id
	  , withdrawal_reason
	  , created_by
	  , created_at
	  , updated_at
	  , submitted_at
	FROM artifacts
`

// ArtifactRepository handles artifact database operations.
type ArtifactRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewArtifactRepository creates a new artifact repository.
func NewArtifactRepository(db *sql.DB, logger *slog.Logger) *ArtifactRepository {
	return &ArtifactRepository{db: db, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ArtifactRepository) scan(row rowScanner) (*models.Artifact, error) {
	var (
		artifact                                   models.Artifact
		data, document, risks                      []byte
		decision, applicationID, reason, createdBy sql.NullString
		submittedAt                                sql.NullTime
	)

	err := row.Scan(
		&artifact.Type,
		&artifact.ID,
		&artifact.Person.CRN,
		&artifact.Person.Name,
		&artifact.Status,
		&data,
		&document,
		&risks,
		&artifact.OutdatedSchema,
		&decision,
		&applicationID,
		&reason,
		&createdBy,
		&artifact.CreatedAt,
		&artifact.UpdatedAt,
		&submittedAt,
	)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(data, &artifact.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	if len(document) > 0 {
		err = json.Unmarshal(document, &artifact.Document)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
	}

	if len(risks) > 0 {
		err = json.Unmarshal(risks, &artifact.Risks)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal risks: %w", err)
		}
	}

	artifact.Decision = decision.String
	artifact.ApplicationID = applicationID.String
	artifact.WithdrawalReason = reason.String
	artifact.CreatedBy = createdBy.String

	if submittedAt.Valid {
		t := submittedAt.Time
		artifact.SubmittedAt = &t
	}

	return &artifact, nil
}

// GetByID returns a single artifact.
func (r *ArtifactRepository) GetByID(ctx context.Context, journey models.JourneyType, id string) (*models.Artifact, error) {
	row := r.db.QueryRowContext(ctx, selectArtifact+" WHERE journey = $1 AND id = $2", journey, id)

	artifact, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewArtifactError("Find", journey, id, persistence.ErrArtifactNotFound)
		}

		return nil, fmt.Errorf("failed to get %s %s: %w", journey, id, err)
	}

	return artifact, nil
}

// GetAll returns every artifact of a journey, newest first.
func (r *ArtifactRepository) GetAll(ctx context.Context, journey models.JourneyType) ([]*models.Artifact, error) {
	rows, err := r.db.QueryContext(ctx, selectArtifact+" WHERE journey = $1 ORDER BY created_at DESC", journey)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", journey, err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	artifacts := make([]*models.Artifact, 0)

	for rows.Next() {
		artifact, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}

		artifacts = append(artifacts, artifact)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", journey, err)
	}

	return artifacts, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func marshalOptional(v any, empty bool) ([]byte, error) {
	if empty {
		return nil, nil
	}

	return json.Marshal(v)
}

// Insert stores a new artifact.
func (r *ArtifactRepository) Insert(ctx context.Context, artifact *models.Artifact) error {
	if artifact.ID == "" {
		artifact.ID = uuid.New().String()
	}

	if artifact.Status == "" {
		artifact.Status = models.ArtifactStatusInProgress
	}

	if artifact.Data == nil {
		artifact.Data = models.Data{}
	}

	now := time.Now().UTC()
	artifact.CreatedAt = now
	artifact.UpdatedAt = now

	data, err := json.Marshal(artifact.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	risks, err := marshalOptional(artifact.Risks, artifact.Risks == nil)
	if err != nil {
		return fmt.Errorf("failed to marshal risks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO artifacts (
			journey, id, crn, person_name, status, data, risks, outdated_schema,
			application_id, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		artifact.Type, artifact.ID, artifact.Person.CRN, artifact.Person.Name, artifact.Status, data, risks,
		artifact.OutdatedSchema, nullable(artifact.ApplicationID), nullable(artifact.CreatedBy),
		artifact.CreatedAt, artifact.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return persistence.NewArtifactError("Create", artifact.Type, artifact.ID, persistence.ErrArtifactAlreadyExists)
		}

		return fmt.Errorf("failed to insert %s %s: %w", artifact.Type, artifact.ID, err)
	}

	return nil
}

// UpdateData replaces the data of an in-progress artifact.
func (r *ArtifactRepository) UpdateData(ctx context.Context, artifact *models.Artifact) error {
	data, err := json.Marshal(artifact.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE artifacts SET data = $3, updated_at = $4
		WHERE journey = $1 AND id = $2 AND status = 'in_progress'`,
		artifact.Type, artifact.ID, data, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", artifact.Type, artifact.ID, err)
	}

	err = r.expectOneRow(ctx, result, "Update", artifact.Type, artifact.ID)
	if err != nil {
		return err
	}

	artifact.UpdatedAt = now

	return nil
}

// MarkSubmitted stores the document and closes the artifact.
func (r *ArtifactRepository) MarkSubmitted(ctx context.Context, artifact *models.Artifact) error {
	data, err := json.Marshal(artifact.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	document, err := json.Marshal(artifact.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE artifacts
		SET data = $3, document = $4, decision = $5, status = 'submitted', submitted_at = $6, updated_at = $6
		WHERE journey = $1 AND id = $2 AND status = 'in_progress'`,
		artifact.Type, artifact.ID, data, document, nullable(artifact.Decision), now,
	)
	if err != nil {
		return fmt.Errorf("failed to submit %s %s: %w", artifact.Type, artifact.ID, err)
	}

	err = r.expectOneRow(ctx, result, "Submit", artifact.Type, artifact.ID)
	if err != nil {
		return err
	}

	artifact.Status = models.ArtifactStatusSubmitted
	artifact.SubmittedAt = &now
	artifact.UpdatedAt = now

	return nil
}

// MarkWithdrawn closes the artifact with a reason.
func (r *ArtifactRepository) MarkWithdrawn(ctx context.Context, journey models.JourneyType, id, reason string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE artifacts SET status = 'withdrawn', withdrawal_reason = $3, updated_at = $4
		WHERE journey = $1 AND id = $2 AND status <> 'withdrawn'`,
		journey, id, reason, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to withdraw %s %s: %w", journey, id, err)
	}

	return r.expectOneRow(ctx, result, "Withdraw", journey, id)
}

// expectOneRow tells a missing artifact apart from one that is already closed.
func (r *ArtifactRepository) expectOneRow(ctx context.Context, result sql.Result, op string, journey models.JourneyType, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected > 0 {
		return nil
	}

	_, err = r.GetByID(ctx, journey, id)
	if err != nil {
		return err
	}

	return persistence.NewArtifactError(op, journey, id, persistence.ErrArtifactClosed)
}

func (p *Persistence) Find(ctx context.Context, _ string, journey models.JourneyType, id string) (*models.Artifact, error) {
	return p.repo.GetByID(ctx, journey, id)
}

func (p *Persistence) List(ctx context.Context, _ string, journey models.JourneyType) ([]*models.Artifact, error) {
	return p.repo.GetAll(ctx, journey)
}

func (p *Persistence) Create(ctx context.Context, _ string, artifact *models.Artifact) error {
	return p.repo.Insert(ctx, artifact)
}

func (p *Persistence) Update(ctx context.Context, _ string, artifact *models.Artifact) error {
	return p.repo.UpdateData(ctx, artifact)
}

func (p *Persistence) Submit(ctx context.Context, _ string, artifact *models.Artifact) error {
	return p.repo.MarkSubmitted(ctx, artifact)
}

func (p *Persistence) Withdraw(ctx context.Context, _ string, journey models.JourneyType, id, reason string) error {
	return p.repo.MarkWithdrawn(ctx, journey, id, reason)
}
