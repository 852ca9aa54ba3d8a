package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/types"
)

func NewSeedCommand() *cobra.Command {
	opts := &Options{}
	var csvPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "import the unicorns dataset from csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSeed(opts, csvPath)
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&csvPath, "csv", "unicorns.csv", "path to the unicorns csv file")
	return cmd
}

func RunSeed(opts *Options, csvPath string) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open csv file %s, %w", csvPath, err)
	}
	defer file.Close()

	datas, err := ParseUnicornCSV(file)
	if err != nil {
		return err
	}
	slog.Info("parsed unicorn companies", slog.Int("count", len(datas)))

	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	if err = app.Store().UnicornStore().SeedReplace(context.Background(), datas); err != nil {
		return fmt.Errorf("failed to seed unicorns, %w", err)
	}

	slog.Info("successfully seeded unicorns", slog.Int("count", len(datas)))
	return nil
}

// 日期列里混用了 "1/2/2006" 与 "2006-01-02" 两种写法
var unicornDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"Jan 2, 2006",
}

// ParseUnicornCSV 解析导出格式的 CSV：首行表头，列依次是
// company, valuation ($n.n), date, country, city, industry, investors。
func ParseUnicornCSV(r io.Reader) ([]types.Unicorn, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		datas []types.Unicorn
		line  int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d, %w", line+1, err)
		}
		line++
		if line == 1 {
			continue // header
		}
		if len(row) < 7 {
			return nil, fmt.Errorf("csv line %d has %d columns, want 7", line, len(row))
		}

		valuation, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(row[1]), "$")), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d has invalid valuation %q, %w", line, row[1], err)
		}

		date, err := parseUnicornDate(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("csv line %d has invalid date %q, %w", line, row[2], err)
		}

		data := types.Unicorn{
			Company:   strings.TrimSpace(row[0]),
			Valuation: valuation,
			Date:      date,
			Country:   strings.TrimSpace(row[3]),
			Industry:  strings.TrimSpace(row[5]),
			Investors: strings.TrimSpace(row[6]),
		}
		if city := strings.TrimSpace(row[4]); city != "" {
			data.City = &city
		}

		datas = append(datas, data)
	}

	return datas, nil
}

func parseUnicornDate(raw string) (time.Time, error) {
	for _, layout := range unicornDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
