package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const productIndex = "products"

// IndexProduct mirrors a product into Elasticsearch for the admin
// dashboard. Storefront relevance ranking is computed in memory; this
// index only serves admin-side browsing, so failures are logged and
// swallowed.
func IndexProduct(ctx context.Context, p models.Product) {
	if database.Elastic == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Println("❌ Product marshal for Elastic failed:", err)
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		log.Println("❌ Elastic index request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic rejected %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Product indexed in Elasticsearch: %s", p.Name)
	}
}

// DeleteProduct removes a product document from the index.
func DeleteProduct(ctx context.Context, id string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: productIndex, DocumentID: id}
	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		log.Println("❌ Elastic delete request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		log.Printf("⚠️ Elastic delete rejected for %s: %s", id, res.String())
	}
}
