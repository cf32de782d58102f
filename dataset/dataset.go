// Package dataset declares retrieval datasets, a document collection plus a
// set of queries, and keeps them in a registry under a string key.
package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Doc is a document with an identifier and a single text field.
type Doc struct {
	DocID string `json:"doc_id"`
	Text  string `json:"text"`
}

// DefaultText returns the text used for indexing.
func (d Doc) DefaultText() string { return d.Text }

// Query is a TREC style topic.
type Query struct {
	QueryID     string `json:"query_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Narrative   string `json:"narrative,omitempty"`
}

// DefaultText returns the query text, the title.
func (q Query) DefaultText() string { return q.Title }

// Docs is a document collection.
type Docs interface {
	DocsIter(ctx context.Context, fn func(Doc) error) error
	DocsLang() string
}

// Queries is a query collection.
type Queries interface {
	QueriesIter(ctx context.Context, fn func(Query) error) error
	QueriesLang() string
}

// Dataset groups documents and queries, either may be nil.
type Dataset struct {
	Docs    Docs
	Queries Queries
}

func (ds Dataset) HasDocs() bool    { return ds.Docs != nil }
func (ds Dataset) HasQueries() bool { return ds.Queries != nil }

// Summary of a dataset check.
type Summary struct {
	Docs    int64 `json:"docs"`
	Queries int64 `json:"queries"`
}

// Check reads all documents and queries of a dataset, so that missing or
// unparsable files surface before the dataset is used. Documents and
// queries are read concurrently.
func Check(ctx context.Context, ds Dataset) (Summary, error) {
	var s Summary
	g, gctx := errgroup.WithContext(ctx)
	if ds.HasDocs() {
		g.Go(func() error {
			return ds.Docs.DocsIter(gctx, func(Doc) error {
				s.Docs++
				return nil
			})
		})
	}
	if ds.HasQueries() {
		g.Go(func() error {
			return ds.Queries.QueriesIter(gctx, func(Query) error {
				s.Queries++
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return s, err
	}
	return s, nil
}
