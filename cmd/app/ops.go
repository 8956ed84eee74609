package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

// op describes one server call in both transports.
type op struct {
	method string
	params any

	verb string
	path string
	body any
}

func invoke(ctx context.Context, cfg cliConfig, o op, out any) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, o.method, o.params, out)
	}
	return newAPIClient(cfg.Server).request(ctx, o.verb, o.path, o.body, out)
}

func doHealth(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == transportHTTP {
		var resp struct {
			Seeds domain.SeedCounts `json:"seeds"`
		}
		if err := invoke(ctx, cfg, op{verb: http.MethodGet, path: "/health"}, &resp); err != nil {
			return err
		}
		if p, ok := out.(*domain.SeedCounts); ok {
			*p = resp.Seeds
		}
		return nil
	}
	return invoke(ctx, cfg, op{method: "system.health"}, out)
}

func doReferenceList(ctx context.Context, cfg cliConfig, resource string, out any) error {
	return invoke(ctx, cfg, op{
		method: resource + ".list",
		verb:   http.MethodGet,
		path:   "/api/" + resource,
	}, out)
}

func doReferenceAdd(ctx context.Context, cfg cliConfig, resource, name string, out any) error {
	payload := map[string]any{"name": name}
	return invoke(ctx, cfg, op{
		method: resource + ".add",
		params: payload,
		verb:   http.MethodPost,
		path:   "/api/" + resource,
		body:   payload,
	}, out)
}

func doReferenceRename(ctx context.Context, cfg cliConfig, resource string, id uint, name string) error {
	return invoke(ctx, cfg, op{
		method: resource + ".rename",
		params: map[string]any{"id": id, "name": name},
		verb:   http.MethodPut,
		path:   "/api/" + resource + "/" + uintToString(id),
		body:   map[string]any{"name": name},
	}, nil)
}

func doReferenceDelete(ctx context.Context, cfg cliConfig, resource string, id uint) error {
	return invoke(ctx, cfg, op{
		method: resource + ".delete",
		params: map[string]any{"id": id},
		verb:   http.MethodDelete,
		path:   "/api/" + resource + "/" + uintToString(id),
	}, nil)
}

func doItemsBrowse(ctx context.Context, cfg cliConfig, q, filter string, categoryID, locationID *uint, out any) error {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	if filter != "" {
		query.Set("filter", filter)
	}
	if categoryID != nil {
		query.Set("category_id", uintToString(*categoryID))
	}
	if locationID != nil {
		query.Set("location_id", uintToString(*locationID))
	}
	return invoke(ctx, cfg, op{
		method: "items.browse",
		params: map[string]any{"q": q, "filter": filter, "category_id": categoryID, "location_id": locationID},
		verb:   http.MethodGet,
		path:   withQuery("/api/items", query),
	}, out)
}

func doItemGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	return invoke(ctx, cfg, op{
		method: "items.get",
		params: map[string]any{"id": id},
		verb:   http.MethodGet,
		path:   "/api/items/" + uintToString(id),
	}, out)
}

func doItemAdd(ctx context.Context, cfg cliConfig, item domain.PantryItem, out any) error {
	return invoke(ctx, cfg, op{
		method: "items.add",
		params: item,
		verb:   http.MethodPost,
		path:   "/api/items",
		body:   item,
	}, out)
}

func doItemUpdate(ctx context.Context, cfg cliConfig, item domain.PantryItem, out any) error {
	return invoke(ctx, cfg, op{
		method: "items.update",
		params: item,
		verb:   http.MethodPut,
		path:   "/api/items/" + uintToString(item.ID),
		body:   item,
	}, out)
}

func doItemDelete(ctx context.Context, cfg cliConfig, id uint) error {
	return invoke(ctx, cfg, op{
		method: "items.delete",
		params: map[string]any{"id": id},
		verb:   http.MethodDelete,
		path:   "/api/items/" + uintToString(id),
	}, nil)
}

func doItemAllergens(ctx context.Context, cfg cliConfig, id uint, out any) error {
	return invoke(ctx, cfg, op{
		method: "items.allergens.list",
		params: map[string]any{"item_id": id},
		verb:   http.MethodGet,
		path:   "/api/items/" + uintToString(id) + "/allergens",
	}, out)
}

func doItemSetAllergens(ctx context.Context, cfg cliConfig, id uint, allergenIDs []uint, out any) error {
	return invoke(ctx, cfg, op{
		method: "items.allergens.set",
		params: map[string]any{"item_id": id, "allergen_ids": allergenIDs},
		verb:   http.MethodPut,
		path:   "/api/items/" + uintToString(id) + "/allergens",
		body:   map[string]any{"allergen_ids": allergenIDs},
	}, out)
}

func doViewExpiring(ctx context.Context, cfg cliConfig, days *int, out any) error {
	query := url.Values{}
	if days != nil {
		query.Set("days", strconv.Itoa(*days))
	}
	return invoke(ctx, cfg, op{
		method: "views.expiring",
		params: map[string]any{"days": days},
		verb:   http.MethodGet,
		path:   withQuery("/api/views/expiring", query),
	}, out)
}

func doViewExpired(ctx context.Context, cfg cliConfig, out any) error {
	return invoke(ctx, cfg, op{
		method: "views.expired",
		verb:   http.MethodGet,
		path:   "/api/views/expired",
	}, out)
}

func doViewLow(ctx context.Context, cfg cliConfig, threshold *int, out any) error {
	query := url.Values{}
	if threshold != nil {
		query.Set("threshold", strconv.Itoa(*threshold))
	}
	return invoke(ctx, cfg, op{
		method: "views.low",
		params: map[string]any{"threshold": threshold},
		verb:   http.MethodGet,
		path:   withQuery("/api/views/low", query),
	}, out)
}

func doStats(ctx context.Context, cfg cliConfig, out any) error {
	return invoke(ctx, cfg, op{method: "stats", verb: http.MethodGet, path: "/api/stats"}, out)
}

func doShoppingList(ctx context.Context, cfg cliConfig, out any) error {
	return invoke(ctx, cfg, op{method: "shopping.list", verb: http.MethodGet, path: "/api/shopping"}, out)
}

func doShoppingAdd(ctx context.Context, cfg cliConfig, entry domain.ShoppingListEntry, out any) error {
	return invoke(ctx, cfg, op{
		method: "shopping.add",
		params: entry,
		verb:   http.MethodPost,
		path:   "/api/shopping",
		body:   entry,
	}, out)
}

func doShoppingUpdate(ctx context.Context, cfg cliConfig, entry domain.ShoppingListEntry, out any) error {
	return invoke(ctx, cfg, op{
		method: "shopping.update",
		params: entry,
		verb:   http.MethodPut,
		path:   "/api/shopping/" + uintToString(entry.ID),
		body:   entry,
	}, out)
}

func doShoppingDelete(ctx context.Context, cfg cliConfig, id uint) error {
	return invoke(ctx, cfg, op{
		method: "shopping.delete",
		params: map[string]any{"id": id},
		verb:   http.MethodDelete,
		path:   "/api/shopping/" + uintToString(id),
	}, nil)
}

func doShoppingRestock(ctx context.Context, cfg cliConfig, threshold *int, out any) error {
	query := url.Values{}
	if threshold != nil {
		query.Set("threshold", strconv.Itoa(*threshold))
	}
	return invoke(ctx, cfg, op{
		method: "shopping.restock",
		params: map[string]any{"threshold": threshold},
		verb:   http.MethodPost,
		path:   withQuery("/api/shopping/restock", query),
	}, out)
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func uintToString(v uint) string {
	return fmt.Sprintf("%d", v)
}
