package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// minorUnitFactor — перевод мажорных единиц валюты в минорные (тенге → тиын).
const minorUnitFactor = 100

// parsePriceMinor приводит цену из формата CRM к минорным единицам.
// CRM присылает цену в мажорных единицах: числом (5000) или
// декорированной строкой ("5 000 ₸"); оба варианта дают 500000.
// Ошибка разбора — повод оставить поле пустым, но не падать:
// nil принципиально отличим от нуля.
func parsePriceMinor(s UpstreamScalar) (*int64, error) {
	switch s.Kind {
	case ScalarAbsent:
		return nil, nil
	case ScalarInt:
		if s.Int < 0 {
			return nil, fmt.Errorf("negative price %d", s.Int)
		}
		v := s.Int * minorUnitFactor
		return &v, nil
	case ScalarString:
		cleaned := stripDecoration(s.Str)
		if cleaned == "" {
			return nil, fmt.Errorf("no digits in price %q", s.Str)
		}

		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("malformed price %q: %w", s.Str, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("negative price %q", s.Str)
		}

		v := d.Mul(decimal.NewFromInt(minorUnitFactor)).Round(0).IntPart()
		return &v, nil
	default:
		return nil, fmt.Errorf("unsupported price kind %d", s.Kind)
	}
}

// parseDimensionCm приводит габарит к целым сантиметрам.
// Принимает число (70) или строку с единицей измерения ("70 см").
func parseDimensionCm(s UpstreamScalar) (*int32, error) {
	switch s.Kind {
	case ScalarAbsent:
		return nil, nil
	case ScalarInt:
		if s.Int < 0 || s.Int > 1<<31-1 {
			return nil, fmt.Errorf("dimension %d out of range", s.Int)
		}
		v := int32(s.Int)
		return &v, nil
	case ScalarString:
		cleaned := stripDecoration(s.Str)
		if cleaned == "" {
			return nil, fmt.Errorf("no digits in dimension %q", s.Str)
		}

		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("malformed dimension %q: %w", s.Str, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("negative dimension %q", s.Str)
		}

		v := int32(d.Round(0).IntPart())
		return &v, nil
	default:
		return nil, fmt.Errorf("unsupported dimension kind %d", s.Kind)
	}
}

// stripDecoration убирает из строки CRM всё, кроме цифр и десятичной точки:
// пробелы-разделители тысяч, знак валюты, единицы измерения.
// Запятая считается десятичным разделителем, если точка не встретилась.
func stripDecoration(s string) string {
	var b strings.Builder
	sawDot := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '.' || r == ',') && !sawDot:
			b.WriteRune('.')
			sawDot = true
		}
	}

	out := b.String()
	// Висящая точка в конце ("5 000,- ₸") не несёт дробной части
	return strings.TrimSuffix(out, ".")
}

// normalizedItem — результат нормализации сырых данных CRM.
type normalizedItem struct {
	item   *domain.CatalogItem
	images []domain.CatalogImage
}

// normalizeItemData превращает payload CRM в доменную позицию со списком изображений.
// Ошибки разбора цены/габаритов не фатальны: поле остаётся пустым, факт логируется выше.
func normalizeItemData(tenantID int64, data *ItemData) (*normalizedItem, []error, error) {
	if data == nil || data.UpstreamID == 0 {
		return nil, nil, e.ErrUpstreamIDMissed
	}
	if strings.TrimSpace(data.Title) == "" {
		return nil, nil, e.ErrTitleRequired
	}

	item := domain.NewCatalogItem(tenantID, data.UpstreamID, strings.TrimSpace(data.Title))
	item.Description = data.Description
	if data.Available != nil {
		item.Enabled = *data.Available
	}

	var parseErrs []error

	price, err := parsePriceMinor(data.Price)
	if err != nil {
		parseErrs = append(parseErrs, e.Wrap("price", err))
	}
	item.Price = price

	height, err := parseDimensionCm(data.Height)
	if err != nil {
		parseErrs = append(parseErrs, e.Wrap("height", err))
	}
	item.HeightCm = height

	width, err := parseDimensionCm(data.Width)
	if err != nil {
		parseErrs = append(parseErrs, e.Wrap("width", err))
	}
	item.WidthCm = width

	if data.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, data.UpdatedAt); err == nil {
			item.UpstreamUpdatedAt = &ts
		} else {
			parseErrs = append(parseErrs, e.Wrap("updated_at", err))
		}
	}

	return &normalizedItem{
		item:   item,
		images: normalizeImages(data),
	}, parseErrs, nil
}

// normalizeImages собирает список изображений: одиночное поле image идёт первым.
// Первое изображение становится главным, если главное не назначено явно.
func normalizeImages(data *ItemData) []domain.CatalogImage {
	urls := make([]string, 0, len(data.Images)+1)
	seen := make(map[string]struct{}, len(data.Images)+1)

	appendURL := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	appendURL(data.Image)
	for _, u := range data.Images {
		appendURL(u)
	}

	images := make([]domain.CatalogImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, *domain.NewCatalogImage(0, u, int32(i), i == 0))
	}

	return images
}
