package dataset

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/irlab/iranthology/pproc"
	"github.com/irlab/iranthology/xio"
	"github.com/segmentio/encoding/json"
)

// ErrMissingQueryID is returned for a topic without a number attribute.
var ErrMissingQueryID = errors.New("topic without number attribute")

// JSONLDocs is a document collection stored as one JSON object per line,
// with fields doc_id and text. Other fields are ignored.
type JSONLDocs struct {
	Path string
	Lang string
}

func (d *JSONLDocs) DocsLang() string { return d.Lang }

// DocsIter calls fn for every document in file order.
func (d *JSONLDocs) DocsIter(ctx context.Context, fn func(Doc) error) error {
	r, err := xio.Open(d.Path)
	if err != nil {
		return err
	}
	defer r.Close()
	proc := pproc.NewProcessor(func(p []byte) ([]byte, error) {
		var doc Doc
		if err := json.Unmarshal(p, &doc); err != nil {
			return nil, err
		}
		return nil, fn(doc)
	}, pproc.WithSkipEmpty(true), pproc.WithTokenName("line"))
	if err := proc.Process(ctx, r, io.Discard); err != nil {
		return fmt.Errorf("%s: %w", d.Path, err)
	}
	return nil
}

// DocsCount returns the number of documents.
func (d *JSONLDocs) DocsCount(ctx context.Context) (int64, error) {
	var n int64
	err := d.DocsIter(ctx, func(Doc) error {
		n++
		return nil
	})
	return n, err
}

// TrecXMLQueries reads topics in TREC XML markup:
//
//	<topics>
//	  <topic number="1">
//	    <title>...</title>
//	    <description>...</description>
//	    <narrative>...</narrative>
//	  </topic>
//	</topics>
type TrecXMLQueries struct {
	Path string
	Lang string
}

func (q *TrecXMLQueries) QueriesLang() string { return q.Lang }

// QueriesIter calls fn for every topic in file order. Unknown child
// elements are ignored.
func (q *TrecXMLQueries) QueriesIter(ctx context.Context, fn func(Query) error) error {
	r, err := xio.Open(q.Path)
	if err != nil {
		return err
	}
	defer r.Close()
	proc := pproc.NewProcessor(func(p []byte) ([]byte, error) {
		query, err := parseTopic(p)
		if err != nil {
			return nil, err
		}
		return nil, fn(query)
	}, pproc.WithSplitFunc(pproc.TagSplitter("topic")), pproc.WithTokenName("topic"))
	if err := proc.Process(ctx, r, io.Discard); err != nil {
		return fmt.Errorf("%s: %w", q.Path, err)
	}
	return nil
}

// QueriesCount returns the number of topics.
func (q *TrecXMLQueries) QueriesCount(ctx context.Context) (int64, error) {
	var n int64
	err := q.QueriesIter(ctx, func(Query) error {
		n++
		return nil
	})
	return n, err
}

// topic holds one <topic> element. A repeated child element is joined with
// a newline.
type topic struct {
	Number      *string    `xml:"number,attr"`
	Title       []itertext `xml:"title"`
	Description []itertext `xml:"description"`
	Narrative   []itertext `xml:"narrative"`
}

func parseTopic(p []byte) (Query, error) {
	var t topic
	if err := xml.Unmarshal(p, &t); err != nil {
		return Query{}, err
	}
	if t.Number == nil {
		return Query{}, ErrMissingQueryID
	}
	return Query{
		QueryID:     *t.Number,
		Title:       joinText(t.Title),
		Description: joinText(t.Description),
		Narrative:   joinText(t.Narrative),
	}, nil
}

func joinText(vs []itertext) string {
	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = string(v)
	}
	return strings.Join(ss, "\n")
}

// itertext collects all character data of an element, including the text
// of nested elements.
type itertext string

func (s *itertext) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var buf []byte
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			buf = append(buf, v...)
		}
	}
	*s = itertext(buf)
	return nil
}
