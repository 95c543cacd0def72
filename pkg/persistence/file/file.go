// Package file provides a file-based artifact backend, one JSON document per artifact.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/persistence"
	"github.com/google/uuid"
)

// Persistence implements persistence.Backend using the file system.
type Persistence struct {
	root string
	mu   sync.Mutex
}

// NewPersistence creates a file backend rooted at root. A file:// prefix is stripped.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) dir(journey models.JourneyType) string {
	return path.Join(fp.root, string(journey))
}

func (fp *Persistence) filePath(journey models.JourneyType, id string) string {
	return filepath.Clean(path.Join(fp.dir(journey), id+".json"))
}

// Find reads an artifact by id.
func (fp *Persistence) Find(_ context.Context, _ string, journey models.JourneyType, id string) (*models.Artifact, error) {
	return fp.read(journey, id)
}

func (fp *Persistence) read(journey models.JourneyType, id string) (*models.Artifact, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, persistence.NewArtifactError("Find", journey, id, persistence.ErrArtifactNotFound)
	}

	body, err := os.ReadFile(fp.filePath(journey, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewArtifactError("Find", journey, id, persistence.ErrArtifactNotFound)
		}

		return nil, fmt.Errorf("failed to fetch %s %s: %w", journey, id, err)
	}

	var artifact models.Artifact

	err = json.Unmarshal(body, &artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s %s: %w", journey, id, err)
	}

	return &artifact, nil
}

func (fp *Persistence) write(artifact *models.Artifact) error {
	err := os.MkdirAll(fp.dir(artifact.Type), 0750)
	if err != nil {
		return fmt.Errorf("failed to create %s directory: %w", artifact.Type, err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", artifact.Type, artifact.ID, err)
	}

	// Write to a sibling file first so readers never see a partial document.
	target := fp.filePath(artifact.Type, artifact.ID)
	tmp := target + ".tmp"

	err = os.WriteFile(tmp, data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write %s %s: %w", artifact.Type, artifact.ID, err)
	}

	err = os.Rename(tmp, target)
	if err != nil {
		return fmt.Errorf("failed to write %s %s: %w", artifact.Type, artifact.ID, err)
	}

	return nil
}

// List returns every artifact of a journey, newest first.
func (fp *Persistence) List(_ context.Context, _ string, journey models.JourneyType) ([]*models.Artifact, error) {
	root := os.DirFS(fp.dir(journey))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", journey, err)
	}

	artifacts := make([]*models.Artifact, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		artifact, err := fp.read(journey, strings.TrimSuffix(file, ".json"))
		if err != nil {
			if errors.Is(err, persistence.ErrArtifactNotFound) {
				continue
			}

			return nil, err
		}

		artifacts = append(artifacts, artifact)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})

	return artifacts, nil
}

// Create stores a new artifact, assigning an id and timestamps when missing.
func (fp *Persistence) Create(_ context.Context, _ string, artifact *models.Artifact) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if artifact.ID == "" {
		artifact.ID = uuid.New().String()
	} else if _, err := os.Stat(fp.filePath(artifact.Type, artifact.ID)); err == nil {
		return persistence.NewArtifactError("Create", artifact.Type, artifact.ID, persistence.ErrArtifactAlreadyExists)
	}

	now := time.Now().UTC()
	artifact.CreatedAt = now
	artifact.UpdatedAt = now

	if artifact.Status == "" {
		artifact.Status = models.ArtifactStatusInProgress
	}

	if artifact.Data == nil {
		artifact.Data = models.Data{}
	}

	return fp.write(artifact)
}

// Update replaces the stored data of an in-progress artifact.
func (fp *Persistence) Update(_ context.Context, _ string, artifact *models.Artifact) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	current, err := fp.read(artifact.Type, artifact.ID)
	if err != nil {
		return err
	}

	if current.Submitted() {
		return persistence.NewArtifactError("Update", artifact.Type, artifact.ID, persistence.ErrArtifactClosed)
	}

	current.Data = artifact.Data
	current.UpdatedAt = time.Now().UTC()
	artifact.UpdatedAt = current.UpdatedAt

	return fp.write(current)
}

// Submit stores the document and marks the artifact submitted.
func (fp *Persistence) Submit(_ context.Context, _ string, artifact *models.Artifact) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	current, err := fp.read(artifact.Type, artifact.ID)
	if err != nil {
		return err
	}

	if current.Submitted() {
		return persistence.NewArtifactError("Submit", artifact.Type, artifact.ID, persistence.ErrArtifactClosed)
	}

	now := time.Now().UTC()
	current.Data = artifact.Data
	current.Document = artifact.Document
	current.Decision = artifact.Decision
	current.Status = models.ArtifactStatusSubmitted
	current.SubmittedAt = &now
	current.UpdatedAt = now

	err = fp.write(current)
	if err != nil {
		return err
	}

	*artifact = *current

	return nil
}

// Withdraw marks the artifact withdrawn with the given reason.
func (fp *Persistence) Withdraw(_ context.Context, _ string, journey models.JourneyType, id, reason string) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	current, err := fp.read(journey, id)
	if err != nil {
		return err
	}

	if current.Status == models.ArtifactStatusWithdrawn {
		return persistence.NewArtifactError("Withdraw", journey, id, persistence.ErrArtifactClosed)
	}

	current.Status = models.ArtifactStatusWithdrawn
	current.WithdrawalReason = reason
	current.UpdatedAt = time.Now().UTC()

	return fp.write(current)
}
