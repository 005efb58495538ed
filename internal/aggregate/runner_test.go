package aggregate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/config"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/fetch"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

func at(t time.Time) *time.Time { return &t }

func art(title, category string, pub *time.Time) model.Article {
	return model.Article{Title: title, Category: category, Published: pub}
}

func titles(list []model.Article) string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Title)
	}
	return strings.Join(names, " ")
}

func TestSortByRecency_UndatedSinkLast(t *testing.T) {
	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	list := []model.Article{
		art("undated", "n", nil),
		art("old", "n", at(base.Add(-3 * time.Hour))),
		art("new", "n", at(base)),
	}
	sortByRecency(list)
	if got := titles(list); got != "new old undated" {
		t.Fatalf("order = %q, want %q", got, "new old undated")
	}
}

func TestSortByRecency_StableOnEqualKeys(t *testing.T) {
	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	list := []model.Article{
		art("dup1", "n", at(base)),
		art("dup2", "n", at(base)),
		art("und1", "n", nil),
		art("und2", "n", nil),
		art("newer", "n", at(base.Add(time.Hour))),
	}
	sortByRecency(list)
	if got := titles(list); got != "newer dup1 dup2 und1 und2" {
		t.Fatalf("stable order broken: %q", got)
	}
}

func TestGroupByCategory_PreservesGlobalOrder(t *testing.T) {
	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	list := []model.Article{
		art("t1", "Tech", at(base)),
		art("n1", "News", at(base.Add(-1 * time.Hour))),
		art("t2", "Tech", at(base.Add(-2 * time.Hour))),
		art("n2", "News", nil),
	}
	groups := groupByCategory(list)
	if len(groups) != 2 || groups[0].Category != "Tech" || groups[1].Category != "News" {
		t.Fatalf("group order = %+v, want Tech then News (first appearance)", groups)
	}
	if got := titles(groups[0].Articles); got != "t1 t2" {
		t.Fatalf("Tech bucket = %q", got)
	}
	if got := titles(groups[1].Articles); got != "n1 n2" {
		t.Fatalf("News bucket = %q", got)
	}
}

func TestBuildDigest_LocalizedGeneratedAt(t *testing.T) {
	st := config.Settings{SiteTitle: "My Digest", Timezone: "UTC", MaxAgeHours: 24}
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	d := BuildDigest(st, nil, now)
	if d.GeneratedAt != "Sunday, March 15 2026 · 2:30 PM UTC" {
		t.Fatalf("generated_at = %q", d.GeneratedAt)
	}
	if d.Title != "My Digest" || d.Total != 0 || d.MaxAgeHours != 24 {
		t.Fatalf("digest header fields wrong: %+v", d)
	}
}

// rss builds one feed document with the given (title, pubDate) pairs; a zero
// time omits pubDate.
func rss(items ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title><link>/</link>`)
	for _, it := range items {
		b.WriteString("<item><title>" + it[0] + "</title><link>http://ex/" + it[0] + "</link>")
		if it[1] != "" {
			b.WriteString("<pubDate>" + it[1] + "</pubDate>")
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func feedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_ScenarioTwoFeeds(t *testing.T) {
	// Feed A (Tech): T, T-1h, T-3h. Feed B (News): T-2h, undated.
	// Expected global order: a1 a2 b1 a3 b2; grouping keeps that projection.
	T := time.Now().UTC().Add(-10 * time.Minute)
	stamp := func(d time.Duration) string { return T.Add(-d).Format(http.TimeFormat) }
	srvA := feedServer(t, rss(
		[2]string{"a1", stamp(0)},
		[2]string{"a2", stamp(1 * time.Hour)},
		[2]string{"a3", stamp(3 * time.Hour)},
	), http.StatusOK)
	srvB := feedServer(t, rss(
		[2]string{"b1", stamp(2 * time.Hour)},
		[2]string{"b2", ""},
	), http.StatusOK)

	cfg := &config.Config{
		Settings: config.Settings{SiteTitle: "d", MaxAgeHours: 24, MaxArticlesPerFeed: 10, Timezone: "UTC"},
		Feeds: []config.Feed{
			{URL: srvA.URL, Name: "A", Category: "Tech"},
			{URL: srvB.URL, Name: "B", Category: "News"},
		},
	}
	cl, _ := fetch.New(fetch.Options{Timeout: 3 * time.Second})
	d := New(cfg, cl).Run(context.Background())

	if d.Total != 5 {
		t.Fatalf("total = %d, want 5", d.Total)
	}
	if len(d.Groups) != 2 || d.Groups[0].Category != "Tech" || d.Groups[1].Category != "News" {
		t.Fatalf("groups = %+v, want Tech then News", d.Groups)
	}
	if got := titles(d.Groups[0].Articles); got != "a1 a2 a3" {
		t.Fatalf("Tech = %q, want \"a1 a2 a3\"", got)
	}
	if got := titles(d.Groups[1].Articles); got != "b1 b2" {
		t.Fatalf("News = %q, want \"b1 b2\"", got)
	}
	if last := d.Groups[1].Articles[1]; last.Published != nil || last.PublishedDisplay != "Date unknown" {
		t.Fatalf("undated article mishandled: %+v", last)
	}
}

func TestRun_FeedFailureIsolated(t *testing.T) {
	bad := feedServer(t, "", http.StatusInternalServerError)
	good := feedServer(t, rss([2]string{"ok", time.Now().UTC().Format(http.TimeFormat)}), http.StatusOK)
	cfg := &config.Config{
		Settings: config.Settings{MaxAgeHours: 24, MaxArticlesPerFeed: 10, Timezone: "UTC"},
		Feeds: []config.Feed{
			{URL: bad.URL, Name: "bad", Category: "Tech"},
			{URL: good.URL, Name: "good", Category: "Tech"},
		},
	}
	cl, _ := fetch.New(fetch.Options{Timeout: 3 * time.Second})
	d := New(cfg, cl).Run(context.Background())
	if d.Total != 1 || titles(d.Groups[0].Articles) != "ok" {
		t.Fatalf("failing feed leaked into digest: %+v", d)
	}
}

func TestRun_EmptyRun(t *testing.T) {
	cfg := &config.Config{Settings: config.Settings{SiteTitle: "d", MaxAgeHours: 24, MaxArticlesPerFeed: 10, Timezone: "UTC"}}
	cl, _ := fetch.New(fetch.Options{Timeout: time.Second})
	d := New(cfg, cl).Run(context.Background())
	if d.Total != 0 || len(d.Groups) != 0 {
		t.Fatalf("empty run must yield empty digest: %+v", d)
	}
	if d.GeneratedAt == "" {
		t.Fatalf("generated_at missing on empty digest")
	}
}

func TestRun_PerFeedCapHolds(t *testing.T) {
	now := time.Now().UTC()
	var items [][2]string
	for i := 0; i < 8; i++ {
		items = append(items, [2]string{fmt.Sprintf("p%d", i), now.Add(-time.Duration(i) * time.Minute).Format(http.TimeFormat)})
	}
	srv := feedServer(t, rss(items...), http.StatusOK)
	cfg := &config.Config{
		Settings: config.Settings{MaxAgeHours: 24, MaxArticlesPerFeed: 3, Timezone: "UTC"},
		Feeds:    []config.Feed{{URL: srv.URL, Name: "s", Category: "Tech"}},
	}
	cl, _ := fetch.New(fetch.Options{Timeout: 3 * time.Second})
	d := New(cfg, cl).Run(context.Background())
	if d.Total != 3 {
		t.Fatalf("total = %d, want cap 3", d.Total)
	}
}
