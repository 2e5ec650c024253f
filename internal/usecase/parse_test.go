package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalarInt(v int64) UpstreamScalar  { return UpstreamScalar{Kind: ScalarInt, Int: v} }
func scalarStr(s string) UpstreamScalar { return UpstreamScalar{Kind: ScalarString, Str: s} }

func TestParsePriceMinor(t *testing.T) {
	tests := []struct {
		name    string
		in      UpstreamScalar
		want    *int64
		wantErr bool
	}{
		{name: "absent", in: UpstreamScalar{}, want: nil},
		{name: "integer major units", in: scalarInt(5000), want: ptrInt64(500000)},
		{name: "zero is a valid price", in: scalarInt(0), want: ptrInt64(0)},
		{name: "decorated string", in: scalarStr("5 000 ₸"), want: ptrInt64(500000)},
		{name: "decimal comma", in: scalarStr("4 500,50"), want: ptrInt64(450050)},
		{name: "trailing dangling comma", in: scalarStr("5 000,- ₸"), want: ptrInt64(500000)},
		{name: "plain string number", in: scalarStr("1200"), want: ptrInt64(120000)},
		{name: "no digits", in: scalarStr("договорная"), wantErr: true},
		{name: "negative integer", in: scalarInt(-5), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceMinor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseDimensionCm(t *testing.T) {
	tests := []struct {
		name    string
		in      UpstreamScalar
		want    *int32
		wantErr bool
	}{
		{name: "absent", in: UpstreamScalar{}, want: nil},
		{name: "integer", in: scalarInt(70), want: ptrInt32(70)},
		{name: "string with unit", in: scalarStr("70 см"), want: ptrInt32(70)},
		{name: "fractional rounds", in: scalarStr("70.4"), want: ptrInt32(70)},
		{name: "no digits", in: scalarStr("высокий"), wantErr: true},
		{name: "negative", in: scalarInt(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDimensionCm(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestUpstreamScalarUnmarshal(t *testing.T) {
	var data ItemData
	raw := `{
		"upstream_id": 42,
		"title": "Букет 101 роза",
		"price": "12 500 ₸",
		"height": 70,
		"width": "45 см"
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	assert.Equal(t, ScalarString, data.Price.Kind)
	assert.Equal(t, "12 500 ₸", data.Price.Str)
	assert.Equal(t, ScalarInt, data.Height.Kind)
	assert.Equal(t, int64(70), data.Height.Int)
	assert.Equal(t, ScalarString, data.Width.Kind)

	var empty ItemData
	require.NoError(t, json.Unmarshal([]byte(`{"upstream_id": 1, "title": "x"}`), &empty))
	assert.Equal(t, ScalarAbsent, empty.Price.Kind, "absent fields stay absent")

	var frac ItemData
	require.NoError(t, json.Unmarshal([]byte(`{"price": 4500.5}`), &frac))
	assert.Equal(t, ScalarString, frac.Price.Kind, "fractional numbers carried as text")
	assert.Equal(t, "4500.5", frac.Price.Str)
}

func TestNormalizeItemData(t *testing.T) {
	t.Run("missing upstream id", func(t *testing.T) {
		_, _, err := normalizeItemData(1, &ItemData{Title: "Букет"})
		require.Error(t, err)
	})

	t.Run("missing title", func(t *testing.T) {
		_, _, err := normalizeItemData(1, &ItemData{UpstreamID: 7})
		require.Error(t, err)
	})

	t.Run("unparseable price is non-fatal", func(t *testing.T) {
		norm, parseErrs, err := normalizeItemData(1, &ItemData{
			UpstreamID: 7,
			Title:      "Букет",
			Price:      scalarStr("дорого"),
		})
		require.NoError(t, err)
		require.Len(t, parseErrs, 1)
		assert.Nil(t, norm.item.Price, "failed parse must stay nil, not zero")
	})

	t.Run("available false disables item", func(t *testing.T) {
		available := false
		norm, _, err := normalizeItemData(1, &ItemData{
			UpstreamID: 7,
			Title:      "Букет",
			Available:  &available,
		})
		require.NoError(t, err)
		assert.False(t, norm.item.Enabled)
	})

	t.Run("updated_at parsed", func(t *testing.T) {
		norm, parseErrs, err := normalizeItemData(1, &ItemData{
			UpstreamID: 7,
			Title:      "Букет",
			UpdatedAt:  "2026-08-30T12:00:00Z",
		})
		require.NoError(t, err)
		assert.Empty(t, parseErrs)
		require.NotNil(t, norm.item.UpstreamUpdatedAt)
	})
}

func TestNormalizeImages(t *testing.T) {
	images := normalizeImages(&ItemData{
		Image:  "https://cdn.example.com/a.jpg",
		Images: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg", ""},
	})

	require.Len(t, images, 2)
	assert.True(t, images[0].IsPrimary)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].SourceURL)
	assert.False(t, images[1].IsPrimary)
	assert.Equal(t, int32(1), images[1].Position)
}

func ptrInt64(v int64) *int64 { return &v }
func ptrInt32(v int32) *int32 { return &v }
