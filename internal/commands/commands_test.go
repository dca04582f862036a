package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/drewconway/shades-of-time/internal/dataset"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/yaml.v2"
)

func testContext(t *testing.T, out io.Writer) *Context {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return &Context{Timeout: time.Second, Log: log, Layout: testLayout(), Stdout: out}
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tones.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingCharter struct {
	calls int
}

func (c *recordingCharter) PrintSummary(w io.Writer, ds *dataset.Dataset) error {
	c.calls++
	_, err := io.WriteString(w, "<charts>\n")
	return err
}

func TestRenderCmd(t *testing.T) {
	t.Run("writes page to stdout", func(t *testing.T) {
		var out bytes.Buffer
		cmd := RenderCmd{Data: writeFixture(t, fixture), Output: "-"}
		if err := cmd.Run(testContext(t, &out)); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		page := out.String()
		if strings.Count(page, "<rect") != 3 || !strings.Contains(page, `id="shades-links"`) {
			t.Errorf("unexpected page:\n%s", page)
		}
	})

	t.Run("writes page to file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "index.html")
		cmd := RenderCmd{Data: writeFixture(t, fixture), Output: target}
		if err := cmd.Run(testContext(t, io.Discard)); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		b, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), `id="chart"`) {
			t.Error("file missing chart mount")
		}
	})

	t.Run("load failure writes unavailable page and fails", func(t *testing.T) {
		var out bytes.Buffer
		cmd := RenderCmd{Data: filepath.Join(t.TempDir(), "missing.json"), Output: "-"}
		err := cmd.Run(testContext(t, &out))
		if !errors.Is(err, dataset.ErrFetch) {
			t.Errorf("Run() error = %v, want ErrFetch", err)
		}
		if !strings.Contains(out.String(), "Data unavailable.") {
			t.Error("unavailable page not written")
		}
	})

	t.Run("bad output path", func(t *testing.T) {
		cmd := RenderCmd{Data: writeFixture(t, fixture), Output: filepath.Join(t.TempDir(), "no", "such", "dir.html")}
		if err := cmd.Run(testContext(t, io.Discard)); err == nil {
			t.Error("Run() succeeded writing to a missing directory")
		}
	})
}

func TestSummaryCmd(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	ds, err := dataset.Parse(strings.NewReader(fixture), log)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("graph", func(t *testing.T) {
		var out bytes.Buffer
		charter := &recordingCharter{}
		cmd := SummaryCmd{Data: "tones.json", Output: "graph"}
		if err := cmd.print(&out, charter, ds); err != nil {
			t.Fatalf("print() error = %v", err)
		}
		for _, want := range []string{"3 faces from tones.json", "1950-01-02 to 1970-05-06", "up to 2 per cover", "20 to 180", "<charts>"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
		if charter.calls != 1 {
			t.Errorf("charter called %d times, want 1", charter.calls)
		}
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := SummaryCmd{Data: "tones.json", Output: "json"}
		if err := cmd.print(&out, &recordingCharter{}, ds); err != nil {
			t.Fatal(err)
		}
		var got summary
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if got.Records != 3 || len(got.Decades) != 3 || got.Decades[0].Decade != 1950 {
			t.Errorf("summary = %+v", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		cmd := SummaryCmd{Data: "tones.json", Output: "yaml"}
		if err := cmd.print(&out, &recordingCharter{}, ds); err != nil {
			t.Fatal(err)
		}
		var got map[string]interface{}
		if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("output is not YAML: %v", err)
		}
		if got["records"] != 3 {
			t.Errorf("records = %v, want 3", got["records"])
		}
	})

	t.Run("reports skipped records", func(t *testing.T) {
		withBad := strings.Replace(fixture, `"month": "03"`, `"month": "13"`, 1)
		ds, err := dataset.Parse(strings.NewReader(withBad), log)
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		cmd := SummaryCmd{Data: "tones.json", Output: "graph"}
		if err := cmd.print(&out, &recordingCharter{}, ds); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "2 faces from tones.json (1 skipped)") {
			t.Errorf("output = %s", out.String())
		}
	})
}

func TestSummaryCmdLoadFailure(t *testing.T) {
	cmd := SummaryCmd{Data: filepath.Join(t.TempDir(), "missing.json"), Output: "json"}
	if err := cmd.Run(testContext(t, io.Discard)); !errors.Is(err, dataset.ErrFetch) {
		t.Errorf("Run() error = %v, want ErrFetch", err)
	}
}
