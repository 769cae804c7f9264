package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates はダッシュボードのテンプレートを読み込みます
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"price": usecase.FormatPrice,
		"unixMilli": func(t time.Time) int64 {
			return t.UnixMilli()
		},
	}).ParseFS(templateFS, "templates/*.html"))
}

// option はセレクトボックスの選択肢です
type option struct {
	Value    string
	Label    string
	Selected bool
}

// FormValues はダッシュボードの入力欄の値です
type FormValues struct {
	Item        string
	Quality     string
	Enhancement string
	MinAmount   int
	MaxPrice    int64
	Interval    int // 秒
}

// DashboardView はテンプレートに渡す表示データです
type DashboardView struct {
	Form         FormValues
	Qualities    []option
	Enhancements []option
	MinInterval  int
	MaxInterval  int
	Snapshot     model.Snapshot
}

// PriceHeader は単価列の見出しを返します
func (v DashboardView) PriceHeader() string {
	if v.Snapshot.Table.ShowAmountColumn {
		return "Цена за шт."
	}
	return "Цена"
}

// DashboardHandler はブラウザ向けのダッシュボードを提供します
type DashboardHandler struct {
	monitor         *usecase.MonitorUsecase
	poller          *usecase.Poller
	tmpl            *template.Template
	defaultInterval time.Duration
	logger          *zap.Logger
}

// NewDashboardHandler は新しいDashboardHandlerインスタンスを作成します
func NewDashboardHandler(monitor *usecase.MonitorUsecase, poller *usecase.Poller, tmpl *template.Template, defaultInterval time.Duration, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		monitor:         monitor,
		poller:          poller,
		tmpl:            tmpl,
		defaultInterval: usecase.ClampInterval(defaultInterval),
		logger:          logger,
	}
}

// Index は入力フォームと現在のスナップショットを描画します
func (h *DashboardHandler) Index(c *gin.Context) {
	form, req := h.parseForm(c)
	view := h.newView(form)
	view.Snapshot = h.monitor.Snapshot(c.Request.Context(), req)
	c.HTML(http.StatusOK, "dashboard.html", view)
}

// Healthz は死活監視用のエンドポイントです
func (h *DashboardHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderResults はスナップショット部分だけのHTML断片を描画します
func (h *DashboardHandler) renderResults(view DashboardView) (string, error) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "results", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseForm はクエリ文字列を読み取ります
// 不正な値は「指定なし」や下限値に丸め、エラーにはしません
func (h *DashboardHandler) parseForm(c *gin.Context) (FormValues, model.WatchRequest) {
	form := FormValues{
		Item:        strings.TrimSpace(c.Query("item")),
		Quality:     c.DefaultQuery("quality", "any"),
		Enhancement: c.DefaultQuery("enhancement", "any"),
		MinAmount:   atoiDefault(c.Query("min_amount"), 1),
		MaxPrice:    int64(atoiDefault(c.Query("max_price"), 0)),
		Interval:    atoiDefault(c.Query("interval"), int(h.defaultInterval/time.Second)),
	}

	q, err := model.ParseQuality(form.Quality)
	if err != nil {
		h.logger.Debug("ignoring quality filter", zap.Error(err))
		form.Quality, q = "any", nil
	} else if q == nil {
		form.Quality = "any"
	} else {
		form.Quality = strconv.Itoa(int(*q))
	}
	e, err := model.ParseEnhancement(form.Enhancement)
	if err != nil {
		h.logger.Debug("ignoring enhancement filter", zap.Error(err))
		form.Enhancement, e = "any", nil
	} else if e == nil {
		form.Enhancement = "any"
	} else {
		form.Enhancement = strconv.Itoa(*e)
	}

	criteria := model.FilterCriteria{
		Quality:      q,
		Enhancement:  e,
		MinAmount:    form.MinAmount,
		MaxUnitPrice: form.MaxPrice,
	}.Normalize()
	form.MinAmount, form.MaxPrice = criteria.MinAmount, criteria.MaxUnitPrice

	interval := usecase.ClampInterval(time.Duration(form.Interval) * time.Second)
	form.Interval = int(interval / time.Second)

	return form, model.WatchRequest{
		Query:    form.Item,
		Criteria: criteria,
		Interval: interval,
	}
}

func (h *DashboardHandler) newView(form FormValues) DashboardView {
	view := DashboardView{
		Form:        form,
		MinInterval: int(usecase.MinInterval / time.Second),
		MaxInterval: int(usecase.MaxInterval / time.Second),
	}

	view.Qualities = append(view.Qualities, option{Value: "any", Label: model.AnyLabel, Selected: form.Quality == "any"})
	for _, q := range model.Qualities() {
		v := strconv.Itoa(int(q))
		view.Qualities = append(view.Qualities, option{Value: v, Label: q.Label(), Selected: form.Quality == v})
	}

	view.Enhancements = append(view.Enhancements, option{Value: "any", Label: model.AnyLabel, Selected: form.Enhancement == "any"})
	for i := 0; i <= model.MaxEnhancement; i++ {
		v := strconv.Itoa(i)
		view.Enhancements = append(view.Enhancements, option{Value: v, Label: v, Selected: form.Enhancement == v})
	}
	return view
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
