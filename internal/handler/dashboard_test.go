package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

type stubResolver struct {
	item model.CatalogItem
	ok   bool
}

func (s stubResolver) Resolve(ctx context.Context, query string) (model.CatalogItem, bool) {
	return s.item, s.ok
}

type stubLots struct {
	lots []model.RawLot
	err  error
}

func (s stubLots) FetchLots(ctx context.Context, itemID string) ([]model.RawLot, error) {
	return s.lots, s.err
}

func newTestRouter(resolver stubResolver, lots stubLots) *gin.Engine {
	monitor := usecase.NewMonitorUsecase(resolver, lots, nil)
	poller := usecase.NewPoller(monitor, nil)
	tmpl := Templates()
	dashboard := NewDashboardHandler(monitor, poller, tmpl, 0, nil)
	return NewRouter(dashboard, NewMarketHandler(monitor), tmpl, nil)
}

func getDoc(t *testing.T, r http.Handler, target string) *goquery.Document {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	return doc
}

func headers(doc *goquery.Document) []string {
	var out []string
	doc.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

var sword = model.CatalogItem{ID: "42", Name: "Меч"}

func TestDashboard_Index_idleWithoutItem(t *testing.T) {
	t.Parallel()

	doc := getDoc(t, newTestRouter(stubResolver{}, stubLots{}), "/")

	if doc.Find(".welcome").Length() != 1 {
		t.Fatalf("expected welcome block")
	}
	if state, _ := doc.Find("#results").Attr("data-state"); state != "idle" {
		t.Fatalf("data-state got %q, want idle", state)
	}
	if n := doc.Find("#quality option").Length(); n != 7 {
		t.Fatalf("quality options got %d, want 7", n)
	}
	if n := doc.Find("#enhancement option").Length(); n != 17 {
		t.Fatalf("enhancement options got %d, want 17", n)
	}
}

func TestDashboard_Index_notFound(t *testing.T) {
	t.Parallel()

	doc := getDoc(t, newTestRouter(stubResolver{ok: false}, stubLots{}), "/?item=xyz123")

	msg := doc.Find(".notice.error").Text()
	if !strings.Contains(msg, "xyz123") || !strings.Contains(msg, "не найден") {
		t.Fatalf("not found message got %q", msg)
	}
}

func TestDashboard_Index_tableWithAllColumns(t *testing.T) {
	t.Parallel()

	lots := stubLots{lots: []model.RawLot{
		{Quality: model.QualityCommon, Potential: 0, Amount: 1, BuyoutPrice: 100000},
		{Quality: model.QualityUncommon, Potential: 3, Amount: 2, BuyoutPrice: 150000},
	}}
	doc := getDoc(t, newTestRouter(stubResolver{item: sword, ok: true}, lots), "/?item="+url.QueryEscape("меч"))

	want := []string{"Цена за шт.", "Кол-во", "Цена", "Заточка", "Редкость"}
	got := headers(doc)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("headers got %v, want %v", got, want)
	}

	rows := doc.Find("tbody tr.lot")
	if rows.Length() != 2 {
		t.Fatalf("rows got %d, want 2", rows.Length())
	}

	first := rows.First()
	if txt := strings.TrimSpace(first.Find(".unit-price").Text()); txt != "75 000" {
		t.Errorf("first unit price got %q, want %q", txt, "75 000")
	}
	if txt := strings.TrimSpace(first.Find(".total").Text()); txt != "150 000" {
		t.Errorf("first total got %q, want %q", txt, "150 000")
	}
	if txt := strings.TrimSpace(first.Find(".enhancement").Text()); txt != "+3" {
		t.Errorf("first enhancement got %q, want %q", txt, "+3")
	}
	if txt := strings.TrimSpace(first.Find(".quality").Text()); txt != "Необычный" {
		t.Errorf("first quality got %q, want %q", txt, "Необычный")
	}
	if style, _ := first.Attr("style"); !strings.Contains(style, "#20B2AA") {
		t.Errorf("first row style got %q, want color #20B2AA", style)
	}

	if name := doc.Find(".header .name").Text(); !strings.Contains(name, "Меч") {
		t.Errorf("header name got %q", name)
	}
	if _, ok := doc.Find(".header .time").Attr("data-updated"); !ok {
		t.Errorf("missing data-updated timestamp")
	}
}

func TestDashboard_Index_singlePriceColumn(t *testing.T) {
	t.Parallel()

	lots := stubLots{lots: []model.RawLot{
		{Amount: 1, BuyoutPrice: 500},
		{Amount: 1, BuyoutPrice: 400},
	}}
	doc := getDoc(t, newTestRouter(stubResolver{item: sword, ok: true}, lots), "/?item="+url.QueryEscape("меч"))

	if got := headers(doc); len(got) != 1 || got[0] != "Цена" {
		t.Fatalf("headers got %v, want [Цена]", got)
	}
	if doc.Find("tbody td").Length() != 2 {
		t.Fatalf("cells got %d, want 2", doc.Find("tbody td").Length())
	}
}

func TestDashboard_Index_emptyAndDegraded(t *testing.T) {
	t.Parallel()

	doc := getDoc(t, newTestRouter(stubResolver{item: sword, ok: true}, stubLots{err: model.ErrUpstream}), "/?item="+url.QueryEscape("меч"))

	if doc.Find(".notice.info").Length() != 1 {
		t.Fatalf("expected no-lots notice")
	}
	if doc.Find(".notice.warn").Length() != 1 {
		t.Fatalf("expected degraded notice")
	}
	if doc.Find("table").Length() != 0 {
		t.Fatalf("table should not be rendered")
	}
}

func TestDashboard_Index_normalizesForm(t *testing.T) {
	t.Parallel()

	target := "/?item=" + url.QueryEscape("меч") +
		"&quality=" + url.QueryEscape("Редкий") +
		"&enhancement=%2B7&min_amount=0&max_price=-5&interval=500"
	doc := getDoc(t, newTestRouter(stubResolver{ok: false}, stubLots{}), target)

	if v, _ := doc.Find("#quality option[selected]").Attr("value"); v != "3" {
		t.Errorf("selected quality got %q, want 3", v)
	}
	if v, _ := doc.Find("#enhancement option[selected]").Attr("value"); v != "7" {
		t.Errorf("selected enhancement got %q, want 7", v)
	}
	if v, _ := doc.Find("#min_amount").Attr("value"); v != "1" {
		t.Errorf("min_amount got %q, want 1", v)
	}
	if v, _ := doc.Find("#max_price").Attr("value"); v != "0" {
		t.Errorf("max_price got %q, want 0", v)
	}
	if v, _ := doc.Find("#interval").Attr("value"); v != "60" {
		t.Errorf("interval got %q, want 60", v)
	}
}

func TestDashboard_Healthz(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(stubResolver{}, stubLots{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}
}
