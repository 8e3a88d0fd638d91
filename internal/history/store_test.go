package history

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/weather-widget/internal/config"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockGateway) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockGateway) Close() error {
	return nil
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		found bool
		err   error
		want  []string
	}{
		{name: "absent", want: []string{}},
		{name: "stored list", value: `["Paris","Tokyo"]`, found: true, want: []string{"Paris", "Tokyo"}},
		{name: "unparsable", value: `{not json`, found: true, want: []string{}},
		{name: "null", value: `null`, found: true, want: []string{}},
		{name: "storage error", err: errors.New("disk gone"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			gw.On("Get", ctx, "citySearchHistory").Return(tt.value, tt.found, tt.err)

			store := Load(ctx, gw, "", zaptest.NewLogger(t))

			assert.Equal(t, tt.want, store.Cities())
			gw.AssertExpectations(t)
		})
	}
}

func TestStore_SaveAppendsAndPersists(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()
	store := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))

	assert.True(t, store.Save(ctx, "Paris"))
	assert.True(t, store.Save(ctx, "Tokyo"))

	raw, found, err := gw.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["Paris","Tokyo"]`, raw)
	assert.Equal(t, 2, store.Len())
}

func TestStore_SaveIgnoresDuplicatesAndEmpty(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()
	require.NoError(t, gw.Set(ctx, DefaultKey, `["Paris","Tokyo"]`))
	store := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))

	assert.False(t, store.Save(ctx, "Paris"))
	assert.False(t, store.Save(ctx, ""))
	assert.Equal(t, []string{"Paris", "Tokyo"}, store.Cities())

	// exact match only
	assert.True(t, store.Save(ctx, "paris"))
	assert.Equal(t, []string{"Paris", "Tokyo", "paris"}, store.Cities())
}

func TestStore_SaveIsBestEffort(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{}
	gw.On("Get", ctx, DefaultKey).Return("", false, nil)
	gw.On("Set", ctx, DefaultKey, `["Oslo"]`).Return(errors.New("read-only"))

	store := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))

	assert.True(t, store.Save(ctx, "Oslo"))
	assert.Equal(t, []string{"Oslo"}, store.Cities())
	gw.AssertExpectations(t)
}

func TestStore_CitiesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, NewMemoryGateway(), DefaultKey, zaptest.NewLogger(t))
	store.Save(ctx, "Paris")

	cities := store.Cities()
	cities[0] = "Lyon"

	assert.Equal(t, []string{"Paris"}, store.Cities())
}

func TestStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, NewMemoryGateway(), DefaultKey, zaptest.NewLogger(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Save(ctx, "Berlin")
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"Berlin"}, store.Cities())
}

func TestFileGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()

	gw, err := NewFileGateway(fsys, "/data")
	require.NoError(t, err)

	_, found, err := gw.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, found)

	store := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))
	store.Save(ctx, "Paris")
	store.Save(ctx, "Tokyo")

	data, err := afero.ReadFile(fsys, "/data/citySearchHistory.json")
	require.NoError(t, err)
	assert.JSONEq(t, `["Paris","Tokyo"]`, string(data))

	reloaded := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))
	assert.Equal(t, []string{"Paris", "Tokyo"}, reloaded.Cities())
}

func TestSQLiteGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()

	gw, err := NewSQLiteGateway(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer gw.Close()

	require.NoError(t, gw.Ping(ctx))

	store := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))
	store.Save(ctx, "Paris")
	store.Save(ctx, "Tokyo")
	store.Save(ctx, "Paris")

	raw, found, err := gw.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["Paris","Tokyo"]`, raw)

	reloaded := Load(ctx, gw, DefaultKey, zaptest.NewLogger(t))
	assert.Equal(t, []string{"Paris", "Tokyo"}, reloaded.Cities())
	assert.NoError(t, reloaded.Ping(ctx))
}

func TestOpenGateway(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	gw, err := OpenGateway(ctx, config.HistoryConfig{Driver: "memory"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryGateway{}, gw)

	gw, err = OpenGateway(ctx, config.HistoryConfig{Driver: "file", Path: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileGateway{}, gw)

	gw, err = OpenGateway(ctx, config.HistoryConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "nested")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteGateway{}, gw)
	require.NoError(t, gw.Close())

	_, err = OpenGateway(ctx, config.HistoryConfig{Driver: "etcd"}, logger)
	assert.Error(t, err)
}
