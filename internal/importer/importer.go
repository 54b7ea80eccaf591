// Package importer bulk-loads catalog rows from CSV exports.
package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"jerseyshop/internal/domain"
)

type JerseyWriter interface {
	Upsert(ctx context.Context, j domain.Jersey) (*domain.Jersey, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// Kind is the kind of rows a CSV file holds.
type Kind string

const (
	KindJerseys    Kind = "jerseys"
	KindCategories Kind = "categories"
)

// DetectKind peeks at the header row. Jersey files carry a player column.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(bufio.NewReader(r)).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	idx := headerIndex(headers)
	if _, ok := idx["player"]; ok {
		return KindJerseys, nil
	}
	if _, ok := idx["id"]; ok {
		if _, ok := idx["name"]; ok {
			return KindCategories, nil
		}
	}
	return "", errors.New("unrecognised CSV: expected a jersey or category header")
}

// CSVImporter upserts jerseys (keyed by name and player) or categories (keyed
// by id) read from CSV.
type CSVImporter struct {
	reader     *csv.Reader
	jerseys    JerseyWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, jerseys JerseyWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, jerseys: jerseys, categories: categories}
}

// Run imports every row and returns how many were written. It stops at the
// first invalid row; rows before it stay written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	save := i.saveJersey
	if _, ok := index["player"]; !ok {
		save = i.saveCategory
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}
		if err := save(ctx, record, index); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) saveJersey(ctx context.Context, record []string, index map[string]int) error {
	if i.jerseys == nil {
		return errors.New("jersey rows need a jersey writer")
	}
	j, err := parseJersey(record, index)
	if err != nil {
		return err
	}
	if _, err := i.jerseys.Upsert(ctx, j); err != nil {
		return fmt.Errorf("upsert jersey %q: %w", j.Name, err)
	}
	return nil
}

func (i *CSVImporter) saveCategory(ctx context.Context, record []string, index map[string]int) error {
	if i.categories == nil {
		return errors.New("category rows need a category writer")
	}
	c := domain.Category{
		ID:          strings.ToLower(pick(record, index, "id")),
		Name:        pick(record, index, "name"),
		Image:       pick(record, index, "image"),
		Description: pick(record, index, "description"),
	}
	if c.ID == "" || c.Name == "" {
		return errors.New("category row needs id and name")
	}
	if _, err := i.categories.Upsert(ctx, c); err != nil {
		return fmt.Errorf("upsert category %q: %w", c.ID, err)
	}
	return nil
}

func parseJersey(record []string, index map[string]int) (domain.Jersey, error) {
	j := domain.Jersey{
		Name:        pick(record, index, "name"),
		Player:      pick(record, index, "player"),
		Image:       pick(record, index, "image"),
		DownloadURL: pick(record, index, "downloadUrl"),
		CategoryID:  strings.ToLower(pick(record, index, "categoryId")),
		Badge:       optional(pick(record, index, "badge")),
		BadgeColor:  optional(pick(record, index, "badgeColor")),
	}
	if j.Name == "" || j.Player == "" || j.Image == "" || j.DownloadURL == "" || j.CategoryID == "" {
		return j, fmt.Errorf("jersey %q is missing required fields", j.Name)
	}

	price, err := money(pick(record, index, "price"))
	if err != nil || price == nil || *price <= 0 {
		return j, fmt.Errorf("jersey %q: price must be a positive amount", j.Name)
	}
	j.Price = *price

	if j.OriginalPrice, err = money(pick(record, index, "originalPrice")); err != nil {
		return j, fmt.Errorf("jersey %q: originalPrice: %w", j.Name, err)
	}
	if raw := pick(record, index, "rating"); raw != "" {
		if j.Rating, err = strconv.ParseFloat(raw, 64); err != nil || j.Rating < 0 || j.Rating > 5 {
			return j, fmt.Errorf("jersey %q: rating must be between 0 and 5", j.Name)
		}
	}
	if raw := pick(record, index, "reviewCount"); raw != "" {
		if j.ReviewCount, err = strconv.Atoi(raw); err != nil || j.ReviewCount < 0 {
			return j, fmt.Errorf("jersey %q: reviewCount must be a non-negative integer", j.Name)
		}
	}
	return j, nil
}

func money(raw string) (*domain.Cents, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	c := domain.CentsFromDecimal(d)
	return &c, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
