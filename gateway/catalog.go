package gateway

import (
	"context"
	"net/url"
	"strconv"
)

// GetProducts fetches one page of the catalog listing.
// page and limit fall back to the storefront defaults when non-positive.
func (c *Client) GetProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 40
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var envelope productsEnvelope
	if err := c.get(ctx, "gateway.GetProducts", "/products?"+query.Encode(), authNone, "", &envelope); err != nil {
		return nil, err
	}
	return productPageFromEnvelope(&envelope), nil
}

// SearchProducts fetches products matching a free-text query.
// Callers should debounce keystrokes through state.SearchDebouncer instead
// of calling this per character.
func (c *Client) SearchProducts(ctx context.Context, queryText string) (*ProductPage, error) {
	query := url.Values{}
	query.Set("search", queryText)

	var envelope productsEnvelope
	if err := c.get(ctx, "gateway.SearchProducts", "/products?"+query.Encode(), authNone, "", &envelope); err != nil {
		return nil, err
	}
	return productPageFromEnvelope(&envelope), nil
}

// GetCategories fetches all product categories
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var envelope categoriesEnvelope
	if err := c.get(ctx, "gateway.GetCategories", "/categories", authNone, "", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetBrands fetches all brands
func (c *Client) GetBrands(ctx context.Context) ([]Brand, error) {
	var envelope brandsEnvelope
	if err := c.get(ctx, "gateway.GetBrands", "/brands", authNone, "", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func productPageFromEnvelope(envelope *productsEnvelope) *ProductPage {
	return &ProductPage{
		Products:      envelope.Data,
		Results:       envelope.Results,
		CurrentPage:   envelope.Metadata.CurrentPage,
		NumberOfPages: envelope.Metadata.NumberOfPages,
		Limit:         envelope.Metadata.Limit,
	}
}
