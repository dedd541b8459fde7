package serverhttp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"merch-service/internal/config"
	"merch-service/internal/merch/service"
	"merch-service/internal/shopify"
)

const feedCSV = `Handle,Title,Vendor,Type,Option1 Value,Option2 Value,Variant SKU,Variant Inventory Qty,Variant Price,Variant Compare At Price,Cost per item,Other - Style Number,Other - Season
bv0217-382,W NkCourt DF Victory Skirt,NIKE - Tennis,NIKE - Tennis : Apparel,S,Teal Blast,BV0217-382-S,3,65.00,75.00,29.25,BV0217-382,SU25
bv0217-382,W NkCourt DF Victory Skirt,NIKE - Tennis,NIKE - Tennis : Apparel,M,Teal Blast,BV0217-382-M,4,65.00,75.00,29.25,BV0217-382,SU25
cw9999-100,M Club Polo,NIKE - Core,NIKE - Core : Apparel,L,White,CW9999-100-L,10,40.00,45.00,18.00,CW9999-100,SU25
`

const storeCSV = `Handle,Title,Variant SKU
nike-club-polo,Nike Club Polo,CW9999-100-L
`

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		MaxUploadMB:   16,
		AllowOrigins:  []string{"*"},
		Brand:         "Nike",
		ScoreStockCap: 30,
	}
	maps, err := service.LoadConfigMaps("", "", "", "")
	require.NoError(t, err)
	shop := shopify.New("", "", 0, zerolog.Nop())
	return NewRouter(cfg, maps, shop, nil, zerolog.Nop())
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCandidatesEndpoint(t *testing.T) {
	r := testRouter(t)
	body, ctype := multipartBody(t, map[string]string{"feed": feedCSV, "store": storeCSV}, nil)
	req := httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Candidates []struct {
			StyleCode string   `json:"style_code"`
			ColorCode string   `json:"color_code"`
			Reasons   []string `json:"reasons"`
		} `json:"candidates"`
		AlreadyListed []struct {
			Style string `json:"Style"`
			Color string `json:"Color"`
		} `json:"already_listed"`
		FeedRows int `json:"feed_rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, 3, resp.FeedRows)
	require.Len(t, resp.Candidates, 1)
	require.Equal(t, "BV0217", resp.Candidates[0].StyleCode)
	require.Equal(t, "382", resp.Candidates[0].ColorCode)
	require.Len(t, resp.AlreadyListed, 1)
	require.Equal(t, "CW9999", resp.AlreadyListed[0].Style)
}

func TestCandidatesRequiresFeed(t *testing.T) {
	r := testRouter(t)
	body, ctype := multipartBody(t, nil, map[string]string{"format": "json"})
	req := httptest.NewRequest(http.MethodPost, "/candidates", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListingsEndpoint(t *testing.T) {
	r := testRouter(t)
	body, ctype := multipartBody(t, map[string]string{"feed": feedCSV}, map[string]string{"codes": "BV0217-382"})
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Products []struct {
			StyleCode string `json:"style_code"`
			Title     string `json:"title"`
			Handle    string `json:"handle"`
			Variants  []struct {
				SKU string `json:"sku"`
			} `json:"variants"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Products, 1)
	p := resp.Products[0]
	require.Equal(t, "BV0217", p.StyleCode)
	require.Equal(t, "Women's NkCourt Dri-FIT Victory Skirt", p.Title)
	require.Len(t, p.Variants, 2)
	require.Equal(t, "BV0217-382-S", p.Variants[0].SKU)
	require.Equal(t, "BV0217-382-M", p.Variants[1].SKU)
}

func TestListingsWorkbookFormat(t *testing.T) {
	r := testRouter(t)
	body, ctype := multipartBody(t, map[string]string{"feed": feedCSV},
		map[string]string{"codes": "BV0217-382", "format": "xlsx"})
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.NotZero(t, rec.Body.Len())
}

func TestUploadUnavailableWithoutCredentials(t *testing.T) {
	r := testRouter(t)
	body, ctype := multipartBody(t, map[string]string{"feed": feedCSV}, map[string]string{"codes": "BV0217-382"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
