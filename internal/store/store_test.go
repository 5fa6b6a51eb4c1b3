// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lineage-press/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.StoreConfig{DataDir: tmpDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func writeLineageFile(t *testing.T, dir string, file LineageFile) string {
	t.Helper()
	data, err := yaml.Marshal(&file)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "lineage.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleLineage() LineageFile {
	return LineageFile{
		Family: "Testov",
		People: []types.Person{
			{Handle: "adam", Name: "Adam", Gender: types.GenderMale, BirthYear: 1900, DeathYear: 1970, Patrilineal: true},
			{Handle: "eva", Name: "Eva", Gender: types.GenderFemale, BirthYear: 1905},
			{Handle: "bedrich", Name: "Bedřich", Gender: types.GenderMale, BirthYear: 1930, Living: true, Patrilineal: true},
		},
		Unions: []types.FamilyUnion{
			{Handle: "f1", Father: "adam", Mother: "eva", Children: []string{"bedrich"}},
		},
	}
}

func ingestSample(t *testing.T, store *Store, dir string) IngestSummary {
	t.Helper()
	path := writeLineageFile(t, dir, sampleLineage())
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf, path)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	for _, table := range []string{"people", "unions", "union_children"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

// --- ingest tests ---

func TestIngestNewRecords(t *testing.T) {
	store, tmpDir := testSetup(t)

	summary := ingestSample(t, store, tmpDir)

	if summary.Indexed != 4 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 4 indexed, 0 failed", summary)
	}
}

func TestIngestSkipsUnchangedAndUpdatesChanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestSample(t, store, tmpDir)

	file := sampleLineage()
	file.People[0].DeathYear = 1971

	path := writeLineageFile(t, tmpDir, file)
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf, path)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1", summary.Updated)
	}
	if summary.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", summary.Skipped)
	}

	p, err := store.GetPerson(context.Background(), "adam")
	if err != nil {
		t.Fatal(err)
	}
	if p.DeathYear != 1971 {
		t.Errorf("adam.DeathYear = %d, want 1971", p.DeathYear)
	}
}

func TestIngestRejectsDanglingUnion(t *testing.T) {
	store, tmpDir := testSetup(t)

	file := sampleLineage()
	file.Unions = append(file.Unions, types.FamilyUnion{
		Handle: "f2", Father: "adam", Children: []string{"nobody"},
	})

	path := writeLineageFile(t, tmpDir, file)
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf, path)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if !strings.Contains(buf.String(), "nobody") {
		t.Errorf("output should name the unknown person, got:\n%s", buf.String())
	}
}

// --- load tests ---

func TestLoadPreservesInsertionOrder(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestSample(t, store, tmpDir)

	people, unions, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var handles []string
	for _, p := range people {
		handles = append(handles, p.Handle)
	}
	want := []string{"adam", "eva", "bedrich"}
	if !reflect.DeepEqual(handles, want) {
		t.Errorf("people order = %v, want %v", handles, want)
	}
	if len(unions) != 1 || unions[0].Handle != "f1" {
		t.Fatalf("unions = %v, want [f1]", unions)
	}
}

func TestLoadDerivesMemberships(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestSample(t, store, tmpDir)

	people, _, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	byHandle := make(map[string]types.Person)
	for _, p := range people {
		byHandle[p.Handle] = p
	}

	if got := byHandle["adam"].Families; !reflect.DeepEqual(got, []string{"f1"}) {
		t.Errorf("adam.Families = %v, want [f1]", got)
	}
	if got := byHandle["eva"].Families; !reflect.DeepEqual(got, []string{"f1"}) {
		t.Errorf("eva.Families = %v, want [f1]", got)
	}
	if got := byHandle["bedrich"].ParentFamilies; !reflect.DeepEqual(got, []string{"f1"}) {
		t.Errorf("bedrich.ParentFamilies = %v, want [f1]", got)
	}
	if got := byHandle["bedrich"].Families; got != nil {
		t.Errorf("bedrich.Families = %v, want none", got)
	}
}

func TestLoadRoundTripsScalars(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestSample(t, store, tmpDir)

	p, err := store.GetPerson(context.Background(), "bedrich")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Bedřich" || !p.Living || !p.Patrilineal || p.BirthYear != 1930 {
		t.Errorf("bedrich = %+v, want name/living/patrilineal/birth year intact", p)
	}
}

// --- replace tests ---

func TestReplaceAll(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestSample(t, store, tmpDir)

	people := []types.Person{
		{Handle: "x", Name: "X", Patrilineal: true},
		{Handle: "y", Name: "Y"},
	}
	unions := []types.FamilyUnion{
		{Handle: "u1", Father: "x", Children: []string{"y"}},
	}
	if err := store.ReplaceAll(context.Background(), people, unions); err != nil {
		t.Fatal(err)
	}

	gotPeople, gotUnions, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gotPeople) != 2 || gotPeople[0].Handle != "x" {
		t.Errorf("people = %v, want replaced set", gotPeople)
	}
	if len(gotUnions) != 1 || !reflect.DeepEqual(gotUnions[0].Children, []string{"y"}) {
		t.Errorf("unions = %v, want [u1 with child y]", gotUnions)
	}
}
