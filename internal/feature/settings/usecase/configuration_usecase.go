package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"topbrands_backend/internal/feature/settings/domain/entity"
	"topbrands_backend/internal/shared/apperror"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ConfigurationRepository abstracts the persistence layer for configurations.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ConfigurationRepository interface {
	// List returns active entries ordered by key. publicOnly narrows to public ones.
	List(ctx context.Context, publicOnly bool) ([]entity.Configuration, error)
	FindByID(ctx context.Context, id uint) (*entity.Configuration, error)
	FindByKey(ctx context.Context, key string) (*entity.Configuration, error)
	Create(ctx context.Context, c *entity.Configuration) error
	Update(ctx context.Context, c *entity.Configuration) error
	Delete(ctx context.Context, id uint) error
}

// Input carries the editable configuration fields.
type Input struct {
	Key           string
	Value         string
	Description   string
	IsActive      bool
	IsPublic      bool
	RequiresAdmin bool
}

// Validate normalizes the key to lower case and reports field-level problems.
func (in *Input) Validate() error {
	problems := apperror.FieldErrors{}
	in.Key = strings.ToLower(strings.TrimSpace(in.Key))
	switch {
	case in.Key == "":
		problems.Add("key", "This field is required")
	case !keyPattern.MatchString(in.Key):
		problems.Add("key", "Key can only contain letters, numbers, underscores, and hyphens")
	}
	if in.Value == "" {
		problems.Add("value", "This field is required")
	}
	return problems.Err()
}

// ConfigurationUsecase provides business logic for system configurations.
type ConfigurationUsecase struct {
	repo ConfigurationRepository
}

// NewConfigurationUsecase creates a new ConfigurationUsecase.
func NewConfigurationUsecase(repo ConfigurationRepository) *ConfigurationUsecase {
	return &ConfigurationUsecase{repo: repo}
}

// List returns the active entries the caller may see.
func (u *ConfigurationUsecase) List(ctx context.Context, admin bool) ([]entity.Configuration, error) {
	return u.repo.List(ctx, !admin)
}

// Get returns entry id when the caller may see it.
func (u *ConfigurationUsecase) Get(ctx context.Context, admin bool, id uint) (*entity.Configuration, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(admin) {
		return nil, ErrConfigurationNotFound
	}
	return c, nil
}

// Value returns the value of an active key, or def when it is missing.
func (u *ConfigurationUsecase) Value(ctx context.Context, key, def string) (string, error) {
	c, err := u.repo.FindByKey(ctx, key)
	if apperror.KindOf(err) == apperror.KindNotFound || (err == nil && !c.IsActive) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Create stores a new entry. Only admins may create admin-only entries.
func (u *ConfigurationUsecase) Create(ctx context.Context, admin bool, in Input) (*entity.Configuration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.RequiresAdmin && !admin {
		return nil, ErrAdminRequired
	}
	c := &entity.Configuration{}
	assign(c, in)
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create configuration %s: %w", c.Key, err)
	}
	return c, nil
}

// Update replaces the fields of entry id.
func (u *ConfigurationUsecase) Update(ctx context.Context, admin bool, id uint, in Input) (*entity.Configuration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := u.Get(ctx, admin, id)
	if err != nil {
		return nil, err
	}
	if !c.EditableBy(admin) || (in.RequiresAdmin && !admin) {
		return nil, ErrAdminRequired
	}
	assign(c, in)
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update configuration %d: %w", id, err)
	}
	slog.Info("configuration updated", "key", c.Key, "admin", admin)
	return c, nil
}

// Delete removes entry id.
func (u *ConfigurationUsecase) Delete(ctx context.Context, admin bool, id uint) error {
	c, err := u.Get(ctx, admin, id)
	if err != nil {
		return err
	}
	if !c.EditableBy(admin) {
		return ErrAdminRequired
	}
	return u.repo.Delete(ctx, id)
}

// Seed creates entries whose key does not exist yet and reports how many it added.
func (u *ConfigurationUsecase) Seed(ctx context.Context, defaults []Input) (int, error) {
	created := 0
	for _, in := range defaults {
		_, err := u.Create(ctx, true, in)
		switch {
		case apperror.KindOf(err) == apperror.KindConflict:
		case err != nil:
			return created, err
		default:
			created++
		}
	}
	return created, nil
}

func assign(c *entity.Configuration, in Input) {
	c.Key = in.Key
	c.Value = in.Value
	c.Description = in.Description
	c.IsActive = in.IsActive
	c.IsPublic = in.IsPublic
	c.RequiresAdmin = in.RequiresAdmin
}
