package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"luzeouro/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// Kind is the type of rows a CSV file holds.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// CSVImporter reads catalog CSV files and inserts or updates rows.
//
// Product files carry the columns name, price, material, category and
// photo_url, plus an optional id. Category files carry key, name and an
// optional slug.
type CSVImporter struct {
	reader       *csv.Reader
	productRepo  ProductWriter
	categoryRepo CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:       csvr,
		productRepo:  products,
		categoryRepo: categories,
	}
}

// DetectKind peeks at the header line of r.
func DetectKind(r io.Reader) (Kind, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read headers: %w", err)
	}
	headers, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return "", fmt.Errorf("parse headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["price"]; ok {
		return KindProducts, nil
	}
	if _, ok := index["key"]; ok {
		return KindCategories, nil
	}
	return "", errors.New("unrecognised csv headers")
}

// Run parses every row and upserts it. Blank rows are skipped. The first
// invalid row stops the import; rows before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	_, isProducts := index["price"]
	if isProducts && i.productRepo == nil {
		return 0, errors.New("product writer required")
	}
	if !isProducts && i.categoryRepo == nil {
		return 0, errors.New("category writer required")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		if isProducts {
			err = i.saveProduct(ctx, record, index)
		} else {
			err = i.saveCategory(ctx, record, index)
		}
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, record []string, index map[string]int) error {
	id := pick(record, index, "id")
	name := pick(record, index, "name")
	material := pick(record, index, "material")
	category := strings.ToLower(pick(record, index, "category"))
	photo := pick(record, index, "photo_url")
	rawPrice := pick(record, index, "price")

	if name == "" || rawPrice == "" || material == "" || category == "" || photo == "" {
		return fmt.Errorf("missing required fields for product %q", name)
	}
	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("invalid id for product %q: %s", name, id)
		}
	}
	price, err := domain.ParseMoney(rawPrice)
	if err != nil || price <= 0 {
		return fmt.Errorf("invalid price for product %q: %s", name, rawPrice)
	}

	_, err = i.productRepo.Upsert(ctx, domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Material:    material,
		CategoryKey: category,
		PhotoURL:    photo,
	})
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", name, err)
	}
	return nil
}

func (i *CSVImporter) saveCategory(ctx context.Context, record []string, index map[string]int) error {
	key := strings.ToLower(pick(record, index, "key"))
	name := pick(record, index, "name")
	slug := pick(record, index, "slug")
	if key == "" || name == "" {
		return fmt.Errorf("missing key or name for category %q", key)
	}
	if slug == "" {
		slug = key
	}
	if _, err := i.categoryRepo.Upsert(ctx, domain.Category{Key: key, Name: name, Slug: slug}); err != nil {
		return fmt.Errorf("upsert category %q: %w", key, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
