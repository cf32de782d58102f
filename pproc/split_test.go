package pproc

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementBounds(t *testing.T) {
	var cases = []struct {
		about     string
		input     string
		tag       string
		wantStart int
		wantEnd   int
	}{
		{"single", `<topic>a</topic>`, "topic", 0, 16},
		{"first of many", `<topic>a</topic><topic>b</topic>`, "topic", 0, 16},
		{"attributes", `<topic number="1">a</topic>`, "topic", 0, 27},
		{"prefix of longer name", `<topics><topic>a</topic></topics>`, "topic", 8, 24},
		{"self closing", `<topic/>`, "topic", 0, 8},
		{"nested outermost", `<t><t>x</t></t>`, "t", 0, 15},
		{"nested self closing", `<t a="1"/><t>y</t>`, "t", 0, 10},
		{"longer name inside", `<t><tx>a</tx></t>`, "t", 0, 17},
		{"unclosed", `<topic>a`, "topic", 0, -1},
		{"open tag incomplete", `<topic number=`, "topic", 0, -1},
		{"absent", `<query>a</query>`, "topic", -1, -1},
	}
	for _, c := range cases {
		t.Run(c.about, func(t *testing.T) {
			start, end := elementBounds([]byte(c.input), c.tag)
			if start != c.wantStart || end != c.wantEnd {
				t.Errorf("got (%d, %d), want (%d, %d)", start, end, c.wantStart, c.wantEnd)
			}
		})
	}
}

func scanAll(input string, split bufio.SplitFunc, bufSize int) ([]string, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, bufSize), 1<<20)
	scanner.Split(split)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}

func TestTagSplitter(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<topics>
  <topic number="1">
    <title>neural ranking</title>
  </topic>
  <topic number="2">
    <title>query expansion</title>
  </topic>
</topics>
`
	want := []string{
		"<topic number=\"1\">\n    <title>neural ranking</title>\n  </topic>",
		"<topic number=\"2\">\n    <title>query expansion</title>\n  </topic>",
	}
	// Small buffers force elements to span reads.
	for _, size := range []int{16, 64, 4096} {
		t.Run(fmt.Sprintf("buffer-%d", size), func(t *testing.T) {
			got, err := scanAll(input, TagSplitter("topic"), size)
			if err != nil {
				t.Fatalf("got %v, want nil", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagSplitterManySmallElements(t *testing.T) {
	var (
		sb   strings.Builder
		want []string
	)
	sb.WriteString("<topics>")
	for i := 0; i < 500; i++ {
		elem := fmt.Sprintf(`<topic number="%d"/>`, i)
		sb.WriteString(elem)
		want = append(want, elem)
	}
	sb.WriteString("</topics>")
	got, err := scanAll(sb.String(), TagSplitter("topic"), 1<<16)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTagSplitterTruncated(t *testing.T) {
	_, err := scanAll(`<topics><topic number="1"><title>x</title>`, TagSplitter("topic"), 4096)
	if !errors.Is(err, ErrTruncatedElement) {
		t.Errorf("got %v, want %v", err, ErrTruncatedElement)
	}
}

func TestTagSplitterEmptyName(t *testing.T) {
	_, err := scanAll(`<a/>`, TagSplitter(""), 4096)
	if !errors.Is(err, ErrInvalidSplitter) {
		t.Errorf("got %v, want %v", err, ErrInvalidSplitter)
	}
}

func TestTagSplitterNoElements(t *testing.T) {
	got, err := scanAll("<topics>\n</topics>\n", TagSplitter("topic"), 4096)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no tokens", got)
	}
}
