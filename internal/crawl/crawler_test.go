package crawl

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/msads/advisor/internal/log"
)

func TestExtractText(t *testing.T) {
	html := `<html><head><script>var x = 1;</script><style>p{}</style></head>
	<body>
	<nav>Home | About</nav>
	<h1>MS in   Applied Data Science</h1>
	<p>The program   prepares students for data careers.</p>
	<ul><li>Machine Learning</li><li>Statistics</li></ul>
	<footer>Copyright 2025</footer>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	text := ExtractText(doc.Selection)

	for _, want := range []string{
		"MS in Applied Data Science",
		"The program prepares students for data careers.",
		"Machine Learning",
		"Statistics",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	for _, reject := range []string{"var x", "Home | About", "Copyright"} {
		if strings.Contains(text, reject) {
			t.Errorf("text contains chrome %q:\n%s", reject, text)
		}
	}
}

func TestPageFileName(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://example.edu/", "index.txt"},
		{"https://example.edu/education/ms-in-applied-data-science/", "education-ms-in-applied-data-science.txt"},
		{"https://example.edu/How-To-Apply", "how-to-apply.txt"},
		{"https://example.edu/a/b.html", "a-b-html.txt"},
	}

	for _, tt := range tests {
		u, err := url.Parse(tt.rawURL)
		if err != nil {
			t.Fatal(err)
		}
		if got := PageFileName(u); got != tt.want {
			t.Errorf("PageFileName(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}

func TestCrawler_Run(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
		<h1>Program Overview</h1>
		<p>A rigorous curriculum.</p>
		<a href="/tuition">Tuition</a>
		</body></html>`))
	})
	mux.HandleFunc("/tuition", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
		<h1>Tuition</h1>
		<p>Tuition is published per year.</p>
		</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	c := NewCrawler(Config{
		StartURL: srv.URL + "/",
		MaxDepth: 2,
		OutDir:   dir,
	}, log.NewNop())

	result, err := c.Run()
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if result.PagesSaved != 2 {
		t.Errorf("PagesSaved = %d, want 2", result.PagesSaved)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tuition.txt"))
	if err != nil {
		t.Fatalf("tuition page not saved: %v", err)
	}
	if !strings.Contains(string(data), "Tuition is published per year.") {
		t.Errorf("tuition.txt content = %q", data)
	}
}

func TestCrawler_Run_BadStartURL(t *testing.T) {
	c := NewCrawler(Config{StartURL: "://bad", OutDir: t.TempDir()}, log.NewNop())
	if _, err := c.Run(); err == nil {
		t.Error("want error for malformed start url")
	}
}
