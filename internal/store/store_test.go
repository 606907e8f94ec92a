package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/ihuza/ihuza-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "ihuza-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestLoad_Absent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	var products []model.Product
	if s.Load(KeyProducts, &products) {
		t.Error("Load reported a value for an absent key")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	in := []model.Product{
		{ID: "p1", Name: "Widget", Quantity: 7, Price: 1.5, OwnerID: "u1"},
		{ID: "p2", Name: "Gadget", Quantity: 0, Price: 99, OwnerID: "u2"},
	}
	if err := s.Save(KeyProducts, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []model.Product
	if !s.Load(KeyProducts, &out) {
		t.Fatal("Load found nothing after Save")
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d products, want 2", len(out))
	}
	if out[0].ID != "p1" || out[1].OwnerID != "u2" {
		t.Errorf("round trip changed data: %+v", out)
	}
}

func TestSave_Replaces(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	if err := s.Save(KeyTheme, "light"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(KeyTheme, "dark"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var theme string
	if !s.Load(KeyTheme, &theme) {
		t.Fatal("Load found nothing after Save")
	}
	if theme != "dark" {
		t.Errorf("theme = %q, want %q", theme, "dark")
	}
}

func TestRemove(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	if err := s.Save(KeyPrincipal, model.Account{ID: "u1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(KeyPrincipal); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	var acc model.Account
	if s.Load(KeyPrincipal, &acc) {
		t.Error("Load reported a value after Remove")
	}

	// Removing an absent key is a no-op.
	if err := s.Remove(KeyPrincipal); err != nil {
		t.Errorf("Remove of absent key: %v", err)
	}
}

func TestLoad_CorruptValueTreatedAsAbsent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	if _, err := db.Exec(
		"INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		KeyProducts, "{not json"); err != nil {
		t.Fatalf("inserting corrupt row: %v", err)
	}

	var products []model.Product
	if s.Load(KeyProducts, &products) {
		t.Error("Load reported a usable value for corrupt JSON")
	}
}

func TestEnsureSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	if err := EnsureSeed(s, "admin-001"); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}

	var products []model.Product
	if !s.Load(KeyProducts, &products) {
		t.Fatal("products not seeded")
	}
	if len(products) != 3 {
		t.Fatalf("seeded %d products, want 3", len(products))
	}
	for _, p := range products {
		if p.OwnerID != "admin-001" {
			t.Errorf("seed product %s owner = %q, want admin-001", p.ID, p.OwnerID)
		}
	}

	var categories []model.Category
	if !s.Load(KeyCategories, &categories) {
		t.Fatal("categories not seeded")
	}
	if len(categories) != 3 {
		t.Fatalf("seeded %d categories, want 3", len(categories))
	}
	// Display counters are carried over as-is, not recomputed.
	if categories[0].ProductCount != 120 {
		t.Errorf("Electronics product count = %d, want 120", categories[0].ProductCount)
	}
}

func TestEnsureSeed_DoesNotOverwrite(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	s := New(db)

	mine := []model.Product{{ID: "mine", Name: "Existing", OwnerID: "u1"}}
	if err := s.Save(KeyProducts, mine); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := EnsureSeed(s, "admin-001"); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}

	var products []model.Product
	if !s.Load(KeyProducts, &products) {
		t.Fatal("products missing after EnsureSeed")
	}
	if len(products) != 1 || products[0].ID != "mine" {
		t.Errorf("EnsureSeed overwrote existing products: %+v", products)
	}
}

func TestNewDB_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ihuza.db")

	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
