package scanfr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brogergvhs/scanfr/internal/providers"
)

type suggestion struct {
	Value *string `json:"value"`
	Data  *string `json:"data"`
}

type searchResponse struct {
	Suggestions *[]suggestion `json:"suggestions"`
}

// ParseSearch reads the autocomplete payload of /search. query is accepted
// for symmetry with the other parsers and is not used to filter results.
func (s *Source) ParseSearch(body []byte, query string) (providers.MangasPage, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return providers.MangasPage{}, &providers.ParseError{What: "search response", Err: err}
	}
	if resp.Suggestions == nil {
		return providers.MangasPage{}, &providers.ParseError{What: "search response", Err: errors.New(`missing "suggestions" array`)}
	}

	mangas := make([]providers.MangaSummary, 0, len(*resp.Suggestions))
	for i, sg := range *resp.Suggestions {
		if sg.Value == nil || sg.Data == nil {
			return providers.MangasPage{}, &providers.ParseError{
				What: "search response",
				Err:  fmt.Errorf(`suggestion %d: missing "value" or "data"`, i),
			}
		}

		mangas = append(mangas, providers.MangaSummary{
			Title: *sg.Value,
			URL:   relative(s.baseURL() + "/manga/" + *sg.Data),
		})
	}

	return providers.MangasPage{Mangas: mangas, HasNextPage: false}, nil
}
