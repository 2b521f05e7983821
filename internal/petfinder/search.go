package petfinder

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	SearchPath = "/animals"

	TypeCat         = "cat"
	StatusAdoptable = "adoptable"
)

type SearchParams struct {
	// pfparam is custom tag for reflect. Please see buildParams.
	Type     string `pfparam:"type"`
	Location string `pfparam:"location"`
	Limit    int    `pfparam:"limit"`
	Status   string `pfparam:"status"`
}

// CatSearch returns params for adoptable cats near location.
func CatSearch(location string, limit int) *SearchParams {
	return &SearchParams{
		Type:     TypeCat,
		Location: location,
		Limit:    limit,
		Status:   StatusAdoptable,
	}
}

type searchResponse struct {
	Animals    []map[string]any `json:"animals"`
	Pagination map[string]any   `json:"pagination"`
}

func (c *Client) search(ctx context.Context, params *SearchParams) ([]*Animal, error) {
	if params.Limit <= 0 || params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	var response searchResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s", c.APIURL, SearchPath), buildParams(params), &response); err != nil {
		return nil, fmt.Errorf("search animals: %w", err)
	}

	c.logger.Debug("got response from petfinder", zap.Int("animals", len(response.Animals)))

	animals, err := decodeAnimals(response.Animals)
	if err != nil {
		return nil, err
	}

	return animals, nil
}

// decodeAnimals maps loosely typed records onto Animal. Numbers are accepted
// where strings are expected since ids arrive as JSON numbers.
func decodeAnimals(items []map[string]any) ([]*Animal, error) {
	animals := make([]*Animal, 0, len(items))

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &animals,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode animals: %w", err)
	}

	return animals, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		key := field.Tag.Get("pfparam")
		if key == "" {
			continue
		}

		value := reflect.ValueOf(params).Elem().FieldByIndex(field.Index)
		switch value.Kind() {
		case reflect.Int:
			if value.Int() != 0 {
				q.Set(key, strconv.FormatInt(value.Int(), 10))
			}
		default:
			if s := fmt.Sprintf("%v", value.Interface()); s != "" {
				q.Set(key, s)
			}
		}
	}

	return q
}
