package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
	"jo3qma.com/pulsara_monitor/internal/usecase"
)

type watchFlags struct {
	item        string
	quality     string
	enhancement string
	minAmount   int
	maxPrice    int64
	interval    time.Duration
}

func newWatchCmd(a *app) *cobra.Command {
	f := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "print the price table for an item every refresh interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&f.item, "item", "i", "", "item name (fuzzy matched against the catalog)")
	cmd.Flags().StringVarP(&f.quality, "quality", "q", "any", "rarity: any, 0-5, english key or russian label")
	cmd.Flags().StringVarP(&f.enhancement, "enhancement", "e", "any", "enhancement level: any or 0-15")
	cmd.Flags().IntVar(&f.minAmount, "min-amount", 1, "minimum quantity per lot")
	cmd.Flags().Int64Var(&f.maxPrice, "max-price", 0, "maximum unit price (0 = unbounded)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "refresh interval, 5s-60s (default from config)")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func (a *app) watch(out io.Writer, f *watchFlags) error {
	q, err := model.ParseQuality(f.quality)
	if err != nil {
		return err
	}
	e, err := model.ParseEnhancement(f.enhancement)
	if err != nil {
		return err
	}

	interval := f.interval
	if interval == 0 {
		interval = a.cfg.Monitor.DefaultInterval
	}

	_, poller, err := a.buildMonitor()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := model.WatchRequest{
		Query: f.item,
		Criteria: model.FilterCriteria{
			Quality:      q,
			Enhancement:  e,
			MinAmount:    f.minAmount,
			MaxUnitPrice: f.maxPrice,
		}.Normalize(),
		Interval: usecase.ClampInterval(interval),
	}

	err = poller.Run(ctx, req, func(snap model.Snapshot) error {
		printSnapshot(out, snap)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printSnapshot はスナップショットを端末向けの表として出力します
func printSnapshot(out io.Writer, snap model.Snapshot) {
	switch snap.State {
	case model.StateIdle:
		fmt.Fprintln(out, "Введите название предмета (минимум 2 символа)")
		return
	case model.StateNotFound:
		fmt.Fprintf(out, "❌ Предмет '%s' не найден в базе данных.\n", snap.Query)
		return
	}

	fmt.Fprintf(out, "\n📦 %s | %s\n", strings.ToUpper(snap.ItemName), snap.UpdatedAt.Local().Format("15:04:05"))
	if snap.Degraded {
		fmt.Fprintln(out, "Источник данных временно недоступен.")
	}
	if snap.State == model.StateEmpty {
		fmt.Fprintln(out, "По заданным фильтрам лотов не найдено.")
		return
	}

	t := snap.Table
	priceHead := "Цена"
	if t.ShowAmountColumn {
		priceHead = "Цена за шт."
	}
	fmt.Fprintln(out, formatRow(t, priceHead, "Кол-во", "Цена", "Заточка", "Редкость"))
	for _, l := range t.Lots {
		line := formatRow(t, l.UnitPriceText, strconv.Itoa(l.Amount), l.TotalPriceText, l.EnhancementLabel, l.QualityLabel)
		fmt.Fprintln(out, tierColor(l.ColorHint).Sprint(line))
	}
	fmt.Fprintf(out, "Лотов: %d · Мин. цена: %s · Средняя цена: %s\n",
		t.Summary.Count, usecase.FormatPrice(t.Summary.MinUnitPrice), t.Summary.AvgUnitPrice.StringFixed(2))
}

// formatRow は表示フラグに応じて列を選び、固定幅で並べます
func formatRow(t model.LotTable, unit, amount, total, enhancement, quality string) string {
	cols := []string{fmt.Sprintf("%14s", unit)}
	if t.ShowAmountColumn {
		cols = append(cols, fmt.Sprintf("%8s", amount), fmt.Sprintf("%14s", total))
	}
	if t.HasVariedEnhancement {
		cols = append(cols, fmt.Sprintf("%8s", enhancement))
	}
	if t.HasVariedQuality {
		cols = append(cols, fmt.Sprintf("  %-16s", quality))
	}
	return strings.Join(cols, " ")
}

// tierColor は "#RRGGBB" 形式の色を端末の24bitカラーに変換します
func tierColor(hex string) *color.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}
