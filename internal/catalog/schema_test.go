package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/openmart/prodsearch/internal/db"
	"github.com/openmart/prodsearch/internal/domain"
)

func testConfig() Config {
	return Config{
		IndexName:       "products",
		KeyPrefix:       "prodsearch:",
		HNSWM:           16,
		HNSWEFConstruct: 200,
	}
}

func TestDocKey(t *testing.T) {
	cfg := testConfig()
	if got := cfg.DocKey("42"); got != "prodsearch:products:42" {
		t.Errorf("unexpected key: %s", got)
	}
}

func TestIndexDefinition_Shape(t *testing.T) {
	def := IndexDefinition(testConfig())

	if def.Name != "products" {
		t.Errorf("unexpected name: %s", def.Name)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "prodsearch:products:" {
		t.Errorf("unexpected prefixes: %v", def.Prefixes)
	}

	byName := make(map[string]db.IndexField)
	for _, f := range def.Fields {
		byName[f.Name] = f
	}

	if f := byName["name"]; f.Type != db.IndexFieldText {
		t.Errorf("name should be TEXT: %+v", f)
	}
	if f := byName["main_category"]; f.Type != db.IndexFieldTag {
		t.Errorf("main_category should be TAG: %+v", f)
	}
	if f := byName["ratings"]; f.Type != db.IndexFieldNumeric || !f.Sortable {
		t.Errorf("ratings should be NUMERIC SORTABLE: %+v", f)
	}
	if f := byName["no_of_ratings"]; f.Type != db.IndexFieldNumeric || f.Sortable {
		t.Errorf("no_of_ratings should be plain NUMERIC: %+v", f)
	}

	vec := byName["embedding"]
	if vec.Type != db.IndexFieldVector || vec.VectorAlgo != db.VectorHNSW {
		t.Fatalf("embedding should be an HNSW vector: %+v", vec)
	}
	if vec.VectorDim != domain.EmbeddingDim || vec.VectorDistance != db.DistanceCosine {
		t.Errorf("unexpected vector params: %+v", vec)
	}
	if vec.VectorM != 16 || vec.VectorEFConstruct != 200 {
		t.Errorf("unexpected HNSW tuning: %+v", vec)
	}
}

// mockIndexStore implements db.IndexManager for tests.
type mockIndexStore struct {
	exists    bool
	existsErr error
	createErr error

	dropCalled   bool
	dropDocs     bool
	createCalled bool
}

func (m *mockIndexStore) CreateIndex(context.Context, *db.IndexDefinition) error {
	m.createCalled = true
	return m.createErr
}

func (m *mockIndexStore) DropIndex(_ context.Context, _ string, deleteDocs bool) error {
	m.dropCalled = true
	m.dropDocs = deleteDocs
	return nil
}

func (m *mockIndexStore) IndexExists(context.Context, string) (bool, error) {
	return m.exists, m.existsErr
}

func TestRecreate_DropsExistingWithDocs(t *testing.T) {
	ms := &mockIndexStore{exists: true}
	mgr := NewManager(ms, testConfig())

	if err := mgr.Recreate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ms.dropCalled || !ms.dropDocs {
		t.Error("expected DropIndex with document deletion")
	}
	if !ms.createCalled {
		t.Error("expected CreateIndex")
	}
}

func TestRecreate_FreshIndex(t *testing.T) {
	ms := &mockIndexStore{exists: false}
	mgr := NewManager(ms, testConfig())

	if err := mgr.Recreate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.dropCalled {
		t.Error("nothing to drop for a fresh index")
	}
	if !ms.createCalled {
		t.Error("expected CreateIndex")
	}
}

func TestEnsure_ExistsIsNotAnError(t *testing.T) {
	ms := &mockIndexStore{createErr: db.ErrIndexExists}
	mgr := NewManager(ms, testConfig())

	if err := mgr.Ensure(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsure_OtherErrorsPropagate(t *testing.T) {
	ms := &mockIndexStore{createErr: errors.New("engine down")}
	mgr := NewManager(ms, testConfig())

	if err := mgr.Ensure(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
