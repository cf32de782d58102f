package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testDataset() Dataset {
	return Dataset{
		Docs:    &JSONLDocs{Path: filepath.Join("testdata", "docs.jsonl"), Lang: "en"},
		Queries: &TrecXMLQueries{Path: filepath.Join("testdata", "topics.xml"), Lang: "en"},
	}
}

func TestJSONLDocs(t *testing.T) {
	docs := &JSONLDocs{Path: filepath.Join("testdata", "docs.jsonl"), Lang: "en"}
	var got []Doc
	err := docs.DocsIter(context.Background(), func(d Doc) error {
		got = append(got, d)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Doc{
		{DocID: "d1", Text: "Dense Passage Retrieval Jane Doe 2021 "},
		{DocID: "d2", Text: "Query Expansion 2020 "},
		{DocID: "d3", Text: "Evaluation "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got[0].DefaultText() != got[0].Text {
		t.Errorf("default text should be the text field")
	}
	n, err := docs.DocsCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d, want 3", n)
	}
	if docs.DocsLang() != "en" {
		t.Errorf("got %q, want en", docs.DocsLang())
	}
}

func TestJSONLDocsStop(t *testing.T) {
	errStop := errors.New("stop")
	docs := &JSONLDocs{Path: filepath.Join("testdata", "docs.jsonl")}
	var n int
	err := docs.DocsIter(context.Background(), func(d Doc) error {
		n++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Errorf("got %v, want %v", err, errStop)
	}
	if n != 1 {
		t.Errorf("got %d calls, want 1", n)
	}
}

func TestTrecXMLQueries(t *testing.T) {
	queries := &TrecXMLQueries{Path: filepath.Join("testdata", "topics.xml"), Lang: "en"}
	var got []Query
	err := queries.QueriesIter(context.Background(), func(q Query) error {
		got = append(got, q)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Query{
		{
			QueryID:     "1",
			Title:       "dense retrieval",
			Description: "Papers on dense passage retrieval.",
			Narrative:   "Relevant papers train dual encoders & evaluate on MS MARCO.",
		},
		{
			QueryID:     "2",
			Title:       "query expansion",
			Description: "Pseudo relevance feedback.",
		},
		{
			QueryID: "3",
			Title:   "evaluation metrics",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got[0].DefaultText() != "dense retrieval" {
		t.Errorf("default text should be the title")
	}
	n, err := queries.QueriesCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d, want 3", n)
	}
}

func TestTrecXMLQueriesMissingNumber(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "topics.xml")
	data := `<topics><topic><title>x</title></topic></topics>`
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	queries := &TrecXMLQueries{Path: fn}
	err := queries.QueriesIter(context.Background(), func(Query) error { return nil })
	if !errors.Is(err, ErrMissingQueryID) {
		t.Errorf("got %v, want %v", err, ErrMissingQueryID)
	}
}

func TestTrecXMLQueriesRepeatedElement(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "topics.xml")
	data := `<topics><topic number="7">
<title>first</title><description>d</description><title>second <b>part</b></title>
</topic></topics>`
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	var got []Query
	queries := &TrecXMLQueries{Path: fn}
	err := queries.QueriesIter(context.Background(), func(q Query) error {
		got = append(got, q)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Query{{QueryID: "7", Title: "first\nsecond part", Description: "d"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	s, err := Check(context.Background(), testDataset())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Summary{Docs: 3, Queries: 3}, s); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckMissingFile(t *testing.T) {
	ds := Dataset{
		Docs:    &JSONLDocs{Path: filepath.Join(t.TempDir(), "missing.jsonl")},
		Queries: &TrecXMLQueries{Path: filepath.Join("testdata", "topics.xml")},
	}
	if _, err := Check(context.Background(), ds); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want not exist", err)
	}
}

func TestCheckPartial(t *testing.T) {
	ds := Dataset{Queries: &TrecXMLQueries{Path: filepath.Join("testdata", "topics.xml")}}
	if ds.HasDocs() || !ds.HasQueries() {
		t.Fatalf("unexpected parts: %v %v", ds.HasDocs(), ds.HasQueries())
	}
	s, err := Check(context.Background(), ds)
	if err != nil {
		t.Fatal(err)
	}
	if s.Docs != 0 || s.Queries != 3 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("b", testDataset()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("a", Dataset{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("b", Dataset{}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("got %v, want %v", err, ErrDuplicate)
	}
	if err := r.Register("", Dataset{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("got %v, want %v", err, ErrEmptyName)
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	ds, err := r.Get("b")
	if err != nil {
		t.Fatal(err)
	}
	if !ds.HasDocs() || !ds.HasQueries() {
		t.Errorf("expected docs and queries")
	}
	if _, err := r.Get("c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want %v", err, ErrNotFound)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	r := NewRegistry()
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Register("same", Dataset{})
			_ = r.Names()
		}()
	}
	wg.Wait()
	if len(r.Names()) != 1 {
		t.Errorf("got %v, want a single name", r.Names())
	}
}
