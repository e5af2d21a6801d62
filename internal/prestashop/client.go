package prestashop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/levapoteur/seorewriter/internal/models"
)

// Resource names of the PrestaShop webservice.
const (
	ResourceProducts      = "products"
	ResourceCategories    = "categories"
	ResourceManufacturers = "manufacturers"
)

// singular maps a resource to the envelope key of its detail response,
// e.g. {"product": {...}}.
var singular = map[string]string{
	ResourceProducts:      "product",
	ResourceCategories:    "category",
	ResourceManufacturers: "manufacturer",
}

// itemType maps a resource to the pipeline's item type vocabulary.
var itemType = map[string]string{
	ResourceProducts:      models.TypeProduct,
	ResourceCategories:    models.TypeCategory,
	ResourceManufacturers: models.TypeManufacturer,
}

// TransportError is a failed round trip with the webservice.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("prestashop %s: %v", e.URL, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-200 webservice response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("prestashop %s: HTTP %d", e.URL, e.Code) }

// DecodeError is a 200 response whose body could not be interpreted.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("prestashop %s: decode: %v", e.URL, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the PrestaShop webservice over basic auth (the API
// key as username, empty password).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListIDs returns the ids of a resource. A limit of zero or less
// returns the whole collection.
func (c *Client) ListIDs(ctx context.Context, resource string, limit int) ([]int, error) {
	params := url.Values{}
	params.Set("display", "[id]")
	params.Set("output_format", "JSON")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	reqURL := fmt.Sprintf("%s/api/%s?%s", c.baseURL, resource, params.Encode())
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var listing map[string][]struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, &DecodeError{URL: reqURL, Err: err}
	}

	entries := listing[resource]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// Get retrieves one full record and canonicalizes its fields. Every
// textual field comes back as a plain string regardless of the
// multilingual or list shape the webservice used.
func (c *Client) Get(ctx context.Context, resource string, id int) (*models.CatalogItem, error) {
	reqURL := fmt.Sprintf("%s/api/%s/%d?output_format=JSON", c.baseURL, resource, id)
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var envelope map[string]map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{URL: reqURL, Err: err}
	}

	record, ok := envelope[singular[resource]]
	if !ok {
		return nil, &DecodeError{URL: reqURL, Err: fmt.Errorf("missing %q envelope", singular[resource])}
	}

	item := &models.CatalogItem{
		ID:     id,
		Type:   itemType[resource],
		Fields: make(map[string]string, len(record)),
	}
	for key, value := range record {
		if s := FieldString(value); s != "" {
			item.Fields[key] = s
		}
	}
	return item, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: reqURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	return body, nil
}

// FieldString flattens the shapes a PrestaShop field value can take —
// plain string, number, list, {"value": ...} or a multilingual
// {"language": [...]} wrapper — into one canonical string.
func FieldString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		if len(v) == 0 {
			return ""
		}
		return FieldString(v[0])
	case map[string]any:
		if lang, ok := v["language"]; ok {
			switch l := lang.(type) {
			case []any:
				if len(l) == 0 {
					return ""
				}
				return FieldString(l[0])
			case map[string]any:
				return FieldString(l)
			}
		}
		if val, ok := v["value"]; ok {
			return FieldString(val)
		}
		return ""
	default:
		return ""
	}
}
