// Command seedpricing loads a tenant's default service rates from a
// price-list Excel workbook.
//
// The workbook's first sheet is read with columns: A=service name,
// B=unit price, C=unit (optional, defaults to "each"). The first row is
// treated as a header and skipped.
//
// Usage: go run ./cmd/seedpricing <tenant-slug> <pricelist.xlsx>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		fmt.Println("Usage: seedpricing <tenant-slug> <pricelist.xlsx>")
		os.Exit(1)
	}
	slug := os.Args[1]
	xlsxPath := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tenantRepo := postgres.NewTenantRepo(db)
	tenant, err := tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("resolve tenant %q: %w", slug, err)
	}

	rates, err := parseWorkbook(xlsxPath, tenant.ID)
	if err != nil {
		return err
	}

	rateRepo := postgres.NewServiceRateRepo(db)
	for i := range rates {
		if err := rateRepo.Upsert(ctx, &rates[i]); err != nil {
			return fmt.Errorf("upsert rate %q: %w", rates[i].Name, err)
		}
	}

	log.Printf("seeded %d service rates for tenant %s", len(rates), slug)
	return nil
}

// parseWorkbook reads the first sheet into service rates, skipping the
// header row and rows without a parseable price.
func parseWorkbook(path string, tenantID uuid.UUID) ([]domain.ServiceRate, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	seen := make(map[string]bool)
	var rates []domain.ServiceRate
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}

		priceStr := strings.TrimSpace(strings.TrimPrefix(cellVal(row, 1), "$"))
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			log.Printf("row %d: skipping %q, unparseable price %q", i+1, name, priceStr)
			continue
		}

		unit := strings.TrimSpace(cellVal(row, 2))
		if unit == "" {
			unit = "each"
		}

		seen[strings.ToLower(name)] = true
		rates = append(rates, domain.ServiceRate{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Name:      name,
			UnitPrice: price,
			Unit:      unit,
		})
	}
	return rates, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
