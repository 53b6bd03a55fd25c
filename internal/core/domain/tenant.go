package domain

import (
	"encoding/json"
	"sort"
)

// Tenant is a remote deployment the agent can act against, keyed in a
// TenantMap by its public base URL. An empty ID marks a statically
// configured (self-hosted) tenant that bypasses the cloud proxy.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TenantMap maps a tenant's base URL to its resolved metadata. Once
// populated for a session it is treated as valid for the session's
// remaining lifetime; it is replaced wholesale, never mutated.
type TenantMap map[string]Tenant

// Encode serializes the map for the session store.
func (m TenantMap) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeTenantMap deserializes a tenant map from the session store.
func DecodeTenantMap(data []byte) (TenantMap, error) {
	var m TenantMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// URLs returns the known tenant base URLs in sorted order, for stable
// diagnostics when a reference does not resolve.
func (m TenantMap) URLs() []string {
	urls := make([]string, 0, len(m))
	for u := range m {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
