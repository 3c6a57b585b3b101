// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup resolves gene symbols and drug names to identifiers through
// the BioThings MyGene.info and MyChem.info query APIs.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/dgidb-annotations/internal/httputil"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// Base URLs for the lookup services. Declared as vars so tests can
// substitute httptest servers.
var (
	myGeneBase = "https://mygene.info"
	myChemBase = "https://mychem.info"
)

// ErrNotFound is returned when a query succeeds but carries no usable hit.
var ErrNotFound = errors.New("no matching hit")

// MyGene queries MyGene.info for human Entrez gene IDs.
type MyGene struct {
	Client    *http.Client
	UserAgent string
}

// NewMyGene returns a MyGene client configured from cfg.
func NewMyGene(client *http.Client, cfg types.HTTPConfig) *MyGene {
	return &MyGene{Client: client, UserAgent: cfg.UserAgent}
}

// EntrezID returns the Entrez ID of the first hit for symbol.
func (g *MyGene) EntrezID(ctx context.Context, symbol string) (string, error) {
	params := url.Values{
		"q":       {"symbol:" + symbol},
		"fields":  {"entrezgene"},
		"species": {"human"},
	}
	body, err := httputil.Get(ctx, g.Client, myGeneBase+"/v3/query?"+params.Encode(), g.UserAgent)
	if err != nil {
		return "", fmt.Errorf("MyGene query %q: %w", symbol, err)
	}
	// entrezgene is a number in v3 responses and a string in some older ones;
	// gjson renders both the same way.
	id, err := firstHit(body, "hits.0.entrezgene")
	if err != nil {
		return "", fmt.Errorf("MyGene query %q: %w", symbol, err)
	}
	return id, nil
}

// MyChem queries MyChem.info for ChEMBL compound IDs by preferred name.
type MyChem struct {
	Client    *http.Client
	UserAgent string
}

// NewMyChem returns a MyChem client configured from cfg.
func NewMyChem(client *http.Client, cfg types.HTTPConfig) *MyChem {
	return &MyChem{Client: client, UserAgent: cfg.UserAgent}
}

// ChemblID returns the ChEMBL molecule ID of the first hit for name.
func (c *MyChem) ChemblID(ctx context.Context, name string) (string, error) {
	params := url.Values{
		"q":      {"chembl.pref_name:" + name},
		"fields": {"chembl.molecule_chembl_id"},
	}
	body, err := httputil.Get(ctx, c.Client, myChemBase+"/v1/query?"+params.Encode(), c.UserAgent)
	if err != nil {
		return "", fmt.Errorf("MyChem query %q: %w", name, err)
	}
	// chembl is an object for a single record and a list when MyChem merged
	// several.
	id, err := firstHit(body, "hits.0.chembl.molecule_chembl_id", "hits.0.chembl.0.molecule_chembl_id")
	if err != nil {
		return "", fmt.Errorf("MyChem query %q: %w", name, err)
	}
	return id, nil
}

// firstHit returns the first non-empty value found at any of paths.
func firstHit(body []byte, paths ...string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("parsing response: invalid JSON")
	}
	for _, p := range paths {
		if v := gjson.GetBytes(body, p); v.Exists() && v.String() != "" {
			return v.String(), nil
		}
	}
	return "", ErrNotFound
}
