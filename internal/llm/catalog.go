package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// ModelCatalog is the ordered list of model ids a provider currently exposes.
// It is fetched fresh per invocation unless the caller supplies an explicit
// model.
type ModelCatalog struct {
	Provider string
	Models   []string
}

// listModels fetches the provider's model catalog.
func listModels(ctx context.Context, httpc Doer, desc ProviderDescriptor, cred Credential) (*ModelCatalog, error) {
	proto := desc.Family.protocol()
	reqURL := AuthorizeURL(proto.modelsURL(desc.BaseURL), desc, cred)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Provider: desc.ID, Err: err}
	}
	for k, v := range BuildHeaders(desc, cred) {
		req.Header.Set(k, v)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: desc.ID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: desc.ID, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &CatalogUnavailableError{
			Provider: desc.ID,
			Status:   resp.StatusCode,
			Body:     truncateBody(string(body)),
		}
	}

	models, err := proto.parseCatalog(body)
	if err != nil {
		return nil, &CatalogUnavailableError{
			Provider: desc.ID,
			Status:   resp.StatusCode,
			Body:     truncateBody(string(body)),
		}
	}

	return &ModelCatalog{Provider: desc.ID, Models: models}, nil
}

// SelectModel picks a model from the catalog using a ranked substring list:
// the first preference that matches any catalog entry (case-insensitively)
// wins, and among matches catalog order is preserved. With no match the first
// catalog entry is returned, so selection is total on non-empty catalogs.
func SelectModel(catalog *ModelCatalog, preferences []string) (string, error) {
	if len(catalog.Models) == 0 {
		return "", &EmptyCatalogError{Provider: catalog.Provider}
	}
	for _, pref := range preferences {
		for _, id := range catalog.Models {
			if strings.Contains(strings.ToLower(id), pref) {
				return id, nil
			}
		}
	}
	return catalog.Models[0], nil
}
