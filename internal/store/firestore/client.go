// Package firestore adapts the remote Firestore store to the store ports.
// All documents live under businesses/{businessID}, the tenant boundary the
// aggregation core never crosses.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barberia/internal/core"
	"barberia/internal/store"
)

const (
	transactionsCollection = "transactions"
	servicesCollection     = "services"
	categoriesCollection   = "expenseCategories"
)

// Client wraps the Firestore client with the operations of one business.
type Client struct {
	fs         *firestore.Client
	businessID string
}

// NewClient builds a Firestore-backed store for the given business. An empty
// credentialsFile falls back to Application Default Credentials.
func NewClient(ctx context.Context, projectID, credentialsFile, businessID string) (*Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create Firestore client: %w", err)
	}

	return &Client{fs: fs, businessID: businessID}, nil
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) collection(name string) *firestore.CollectionRef {
	return c.fs.Collection("businesses").Doc(c.businessID).Collection(name)
}

// ListRaw returns every transaction document of the business as a raw
// record. Field aliasing and defaults are the normalizer's concern; this
// layer only lifts Firestore values into the union shape.
func (c *Client) ListRaw(ctx context.Context) ([]core.RawRecord, error) {
	iter := c.collection(transactionsCollection).Documents(ctx)
	defer iter.Stop()

	var raws []core.RawRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate transactions for business %s: %w", c.businessID, err)
		}
		raws = append(raws, rawFromDoc(doc.Ref.ID, doc.Data()))
	}
	return raws, nil
}

// Add writes one transaction. A zero OccurredAt asks the store for its
// server clock, matching how the mobile client always wrote new records.
func (c *Client) Add(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	data := map[string]interface{}{
		"type":         string(tx.Kind),
		"scope":        string(tx.Kind.Scope()),
		"amount":       tx.Amount,
		"method":       string(tx.Method),
		"localCreated": time.Now().Format(time.RFC3339),
	}
	if tx.OccurredAt.IsZero() {
		data["date"] = firestore.ServerTimestamp
	} else {
		data["date"] = tx.OccurredAt
	}
	if tx.Note != "" {
		data["description"] = tx.Note
	}
	if tx.ServiceRef != nil {
		data["serviceId"] = tx.ServiceRef.ID
		data["servicio"] = tx.ServiceRef.Name
	}
	if tx.CategoryRef != nil {
		data["categoryId"] = tx.CategoryRef.ID
		data["categoria"] = tx.CategoryRef.Name
	}

	col := c.collection(transactionsCollection)
	if tx.ID != "" {
		// Keep the caller's id so worker retries stay idempotent.
		if _, err := col.Doc(tx.ID).Set(ctx, data); err != nil {
			return "", fmt.Errorf("set transaction %s: %w", tx.ID, err)
		}
		return tx.ID, nil
	}

	ref, _, err := col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("add transaction: %w", err)
	}
	return ref.ID, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	doc := c.collection(transactionsCollection).Doc(id)

	// Firestore deletes are no-ops on missing documents; check first so a
	// bad id surfaces as not found instead of silent success.
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
		}
		return fmt.Errorf("get transaction %s: %w", id, err)
	}

	if _, err := doc.Delete(ctx); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// Clear deletes every transaction of the business, one document at a time.
func (c *Client) Clear(ctx context.Context) error {
	iter := c.collection(transactionsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("iterate transactions for clear: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("delete transaction %s: %w", doc.Ref.ID, err)
		}
	}
}

func (c *Client) ListServices(ctx context.Context) ([]core.Service, error) {
	iter := c.collection(servicesCollection).Documents(ctx)
	defer iter.Stop()

	var services []core.Service
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate services: %w", err)
		}
		data := doc.Data()
		services = append(services, core.Service{
			ID:     doc.Ref.ID,
			Name:   getString(data, "name"),
			Price:  getFloat(data, "price"),
			Scope:  core.Scope(getStringDefault(data, "scope", string(core.ScopeNegocio))),
			Active: getBoolDefault(data, "active", true),
		})
	}
	return services, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]core.ExpenseCategory, error) {
	iter := c.collection(categoriesCollection).Documents(ctx)
	defer iter.Stop()

	var categories []core.ExpenseCategory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate categories: %w", err)
		}
		data := doc.Data()
		categories = append(categories, core.ExpenseCategory{
			ID:     doc.Ref.ID,
			Name:   getString(data, "name"),
			Scope:  core.Scope(getStringDefault(data, "scope", string(core.ScopeNegocio))),
			Active: getBoolDefault(data, "active", true),
		})
	}
	return categories, nil
}

func (c *Client) SaveService(ctx context.Context, s core.Service) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	data := map[string]interface{}{
		"name":      s.Name,
		"price":     s.Price,
		"scope":     string(s.Scope),
		"active":    s.Active,
		"updatedAt": firestore.ServerTimestamp,
	}
	return c.saveCatalogDoc(ctx, servicesCollection, s.ID, data)
}

func (c *Client) SaveCategory(ctx context.Context, cat core.ExpenseCategory) (string, error) {
	if err := cat.Validate(); err != nil {
		return "", err
	}
	data := map[string]interface{}{
		"name":      cat.Name,
		"scope":     string(cat.Scope),
		"active":    cat.Active,
		"updatedAt": firestore.ServerTimestamp,
	}
	return c.saveCatalogDoc(ctx, categoriesCollection, cat.ID, data)
}

func (c *Client) DeleteService(ctx context.Context, id string) error {
	if _, err := c.collection(servicesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if _, err := c.collection(categoriesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func (c *Client) saveCatalogDoc(ctx context.Context, collection, id string, data map[string]interface{}) (string, error) {
	col := c.collection(collection)
	if id != "" {
		if _, err := col.Doc(id).Set(ctx, data, firestore.MergeAll); err != nil {
			return "", fmt.Errorf("set %s doc %s: %w", collection, id, err)
		}
		return id, nil
	}
	data["createdAt"] = firestore.ServerTimestamp
	ref, _, err := col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("add %s doc: %w", collection, err)
	}
	return ref.ID, nil
}
