package reports

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "reportes.json"), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestSaveThenList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, &Report{
		TipoError:   "dato_incorrecto",
		Descripcion: "La fecha del trámite no coincide",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^REP_\d{8}_\d{6}_\d{6}$`, id)

	all, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.False(t, all[0].FechaReporte.IsZero())
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, &Report{TipoError: "a", Descripcion: "primer reporte valido"})
	require.NoError(t, err)
	second, err := store.Save(ctx, &Report{TipoError: "b", Descripcion: "segundo reporte valido"})
	require.NoError(t, err)

	all, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)
}

func TestListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Save(ctx, &Report{TipoError: "x", Descripcion: "descripcion suficiente"})
		require.NoError(t, err)
	}

	all, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMissingFileReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	all, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	all, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, all)

	// A corrupt document must not block new submissions.
	_, err = store.Save(context.Background(), &Report{TipoError: "x", Descripcion: "descripcion suficiente"})
	require.NoError(t, err)
}

func TestConcurrentSavesLoseNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Save(ctx, &Report{TipoError: "x", Descripcion: "descripcion suficiente"}); err != nil {
				t.Errorf("save failed: %v", err)
			}
		}()
	}
	wg.Wait()

	all, err := store.List(ctx, n*2)
	require.NoError(t, err)
	assert.Len(t, all, n, "no submission may be lost to a write race")
}

func TestFileIsValidJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportes.json")
	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), &Report{
		Nombre:      "Ana",
		Email:       "ana@example.com",
		TipoError:   "enlace_roto",
		Descripcion: "El enlace de descarga no funciona",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Ana", decoded[0].Nombre)
}

func TestAnonymize(t *testing.T) {
	tests := []struct {
		name string
		in   Report
		want string
	}{
		{"with name", Report{Nombre: "Ana", TipoError: "x"}, "true"},
		{"with email", Report{Email: "a@b.co", TipoError: "x"}, "true"},
		{"anonymous", Report{TipoError: "x"}, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Anonymize()
			assert.Equal(t, tt.want, got.TieneContacto)
			assert.Equal(t, tt.in.TipoError, got.TipoError)
		})
	}
}
