package usecase_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/settings/domain/entity"
	"topbrands_backend/internal/feature/settings/usecase"
	"topbrands_backend/internal/shared/apperror"
)

// memoryConfigs はConfigurationRepositoryのインメモリ実装です。
type memoryConfigs struct {
	items  map[uint]*entity.Configuration
	nextID uint
}

func newMemoryConfigs(items ...entity.Configuration) *memoryConfigs {
	m := &memoryConfigs{items: map[uint]*entity.Configuration{}}
	for i := range items {
		c := items[i]
		m.nextID++
		c.ID = m.nextID
		m.items[c.ID] = &c
	}
	return m
}

func (m *memoryConfigs) List(_ context.Context, publicOnly bool) ([]entity.Configuration, error) {
	out := []entity.Configuration{}
	for _, c := range m.items {
		if c.IsActive && (!publicOnly || c.IsPublic) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memoryConfigs) FindByID(_ context.Context, id uint) (*entity.Configuration, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, usecase.ErrConfigurationNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryConfigs) FindByKey(_ context.Context, key string) (*entity.Configuration, error) {
	for _, c := range m.items {
		if c.Key == key {
			cp := *c
			return &cp, nil
		}
	}
	return nil, usecase.ErrConfigurationNotFound
}

func (m *memoryConfigs) Create(ctx context.Context, c *entity.Configuration) error {
	if _, err := m.FindByKey(ctx, c.Key); err == nil {
		return usecase.ErrDuplicateKey
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memoryConfigs) Update(_ context.Context, c *entity.Configuration) error {
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memoryConfigs) Delete(_ context.Context, id uint) error {
	if _, ok := m.items[id]; !ok {
		return usecase.ErrConfigurationNotFound
	}
	delete(m.items, id)
	return nil
}

func fixtures() *memoryConfigs {
	return newMemoryConfigs(
		entity.Configuration{Key: "site_title", Value: "Top 50 Brands Nigeria", IsActive: true, IsPublic: true},
		entity.Configuration{Key: "maintenance_mode", Value: "false", IsActive: true, RequiresAdmin: true},
		entity.Configuration{Key: "api_version", Value: "v1", IsActive: true, IsPublic: true, RequiresAdmin: true},
		entity.Configuration{Key: "legacy", Value: "x", IsPublic: true},
	)
}

func keys(cs []entity.Configuration) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Key)
	}
	return out
}

// TestConfigurationUsecase_List は有効な設定のみ、管理者以外は公開設定のみ返すことを検証します。
func TestConfigurationUsecase_List(t *testing.T) {
	uc := usecase.NewConfigurationUsecase(fixtures())
	ctx := context.Background()

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"api_version", "maintenance_mode", "site_title"}, keys(all))

	public, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"api_version", "site_title"}, keys(public))

	_, err = uc.Get(ctx, false, 2)
	assert.ErrorIs(t, err, usecase.ErrConfigurationNotFound, "private entries are hidden from editors")
	_, err = uc.Get(ctx, true, 4)
	assert.ErrorIs(t, err, usecase.ErrConfigurationNotFound, "inactive entries are hidden")
}

// TestConfigurationUsecase_Update はrequires_adminの設定を管理者以外が変更できないことを検証します。
func TestConfigurationUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("管理者以外は管理者専用の設定を変更できない", func(t *testing.T) {
		uc := usecase.NewConfigurationUsecase(fixtures())
		_, err := uc.Update(ctx, false, 3, usecase.Input{Key: "api_version", Value: "v2", IsActive: true, IsPublic: true, RequiresAdmin: true})
		assert.ErrorIs(t, err, usecase.ErrAdminRequired)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		assert.ErrorIs(t, uc.Delete(ctx, false, 3), usecase.ErrAdminRequired)
	})

	t.Run("管理者以外でも公開設定は変更できる", func(t *testing.T) {
		uc := usecase.NewConfigurationUsecase(fixtures())
		got, err := uc.Update(ctx, false, 1, usecase.Input{Key: "Site_Title", Value: "Top Brands", IsActive: true, IsPublic: true})
		require.NoError(t, err)
		assert.Equal(t, "site_title", got.Key)
		assert.Equal(t, "Top Brands", got.Value)
	})

	t.Run("管理者以外は管理者専用へ格上げできない", func(t *testing.T) {
		uc := usecase.NewConfigurationUsecase(fixtures())
		_, err := uc.Update(ctx, false, 1, usecase.Input{Key: "site_title", Value: "x", IsActive: true, IsPublic: true, RequiresAdmin: true})
		assert.ErrorIs(t, err, usecase.ErrAdminRequired)
	})

	t.Run("管理者", func(t *testing.T) {
		uc := usecase.NewConfigurationUsecase(fixtures())
		got, err := uc.Update(ctx, true, 2, usecase.Input{Key: "maintenance_mode", Value: "true", IsActive: true, RequiresAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, "true", got.Value)
		require.NoError(t, uc.Delete(ctx, true, 2))
	})
}

// TestConfigurationUsecase_Create はキーの検証と重複を確認します。
func TestConfigurationUsecase_Create(t *testing.T) {
	uc := usecase.NewConfigurationUsecase(fixtures())
	ctx := context.Background()

	_, err := uc.Create(ctx, true, usecase.Input{Key: "bad key!", Value: ""})
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "key")
	assert.Contains(t, ae.Fields, "value")

	_, err = uc.Create(ctx, true, usecase.Input{Key: "SITE_TITLE", Value: "dup"})
	assert.ErrorIs(t, err, usecase.ErrDuplicateKey)

	_, err = uc.Create(ctx, false, usecase.Input{Key: "secret", Value: "1", RequiresAdmin: true})
	assert.ErrorIs(t, err, usecase.ErrAdminRequired)

	got, err := uc.Create(ctx, false, usecase.Input{Key: "enable-year-switching", Value: "true", IsActive: true, IsPublic: true})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
}

// TestConfigurationUsecase_SeedAndValue は既定値の投入と値の参照を検証します。
func TestConfigurationUsecase_SeedAndValue(t *testing.T) {
	uc := usecase.NewConfigurationUsecase(fixtures())
	ctx := context.Background()

	n, err := uc.Seed(ctx, []usecase.Input{
		{Key: "site_title", Value: "ignored", IsActive: true},
		{Key: "show_historical_data", Value: "true", IsActive: true, IsPublic: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v, err := uc.Value(ctx, "site_title", "")
	require.NoError(t, err)
	assert.Equal(t, "Top 50 Brands Nigeria", v)

	v, err = uc.Value(ctx, "legacy", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v, "inactive entries fall back")

	v, err = uc.Value(ctx, "missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}
