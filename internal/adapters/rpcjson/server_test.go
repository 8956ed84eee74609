package rpcjson

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/adapters/db/sqlite"
	"github.com/atvirokodosprendimai/pantrypal/internal/application"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
	"github.com/atvirokodosprendimai/pantrypal/internal/logging"
)

func newTestService(t *testing.T) *application.PantryService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "pantry_rpc.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(db) })

	svc := application.NewPantryService(sqlite.NewStore(db),
		application.WithClock(inventory.FixedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))),
		application.WithLogger(logging.Discard()),
	)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return svc
}

func call(t *testing.T, s *Server, method string, params any) response {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return s.dispatch(context.Background(), request{JSONRPC: "2.0", Method: method, Params: raw, ID: 1})
}

func TestDispatchItemFlow(t *testing.T) {
	s := NewServer(newTestService(t), logging.Discard())

	resp := call(t, s, "items.add", domain.PantryItem{Name: "Yogurt", CategoryID: 1, LocationID: 1, Quantity: 2, ExpirationDate: "2023-12-31"})
	if resp.Error != nil {
		t.Fatalf("items.add: %+v", resp.Error)
	}
	item, ok := resp.Result.(domain.PantryItem)
	if !ok || item.ID == 0 {
		t.Fatalf("unexpected result: %#v", resp.Result)
	}

	resp = call(t, s, "items.browse", browseParams{Filter: "expired"})
	if resp.Error != nil {
		t.Fatalf("items.browse: %+v", resp.Error)
	}
	views := resp.Result.([]inventory.ItemView)
	if len(views) != 1 || views[0].Name != "Yogurt" {
		t.Fatalf("unexpected expired views: %+v", views)
	}

	resp = call(t, s, "shopping.restock", nil)
	if resp.Error != nil {
		t.Fatalf("shopping.restock: %+v", resp.Error)
	}
	if added := resp.Result.([]domain.ShoppingListEntry); len(added) != 1 {
		t.Fatalf("unexpected restock: %+v", added)
	}

	resp = call(t, s, "items.delete", idParams{ID: item.ID})
	if resp.Error != nil {
		t.Fatalf("items.delete: %+v", resp.Error)
	}
	resp = call(t, s, "items.get", idParams{ID: item.ID})
	if resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Fatalf("expected not found, got %+v", resp)
	}
}

func TestDispatchErrors(t *testing.T) {
	s := NewServer(newTestService(t), logging.Discard())

	cases := []struct {
		name string
		req  request
		code int
	}{
		{"wrong version", request{JSONRPC: "1.0", Method: "items.list"}, codeInvalidRequest},
		{"unknown method", request{JSONRPC: "2.0", Method: "items.explode"}, codeMethodNotFound},
		{"bad params", request{JSONRPC: "2.0", Method: "items.get", Params: json.RawMessage(`"seven"`)}, codeInvalidParams},
		{"validation", request{JSONRPC: "2.0", Method: "categories.add", Params: json.RawMessage(`{"name":"  "}`)}, codeInvalidParams},
		{"duplicate", request{JSONRPC: "2.0", Method: "categories.add", Params: json.RawMessage(`{"name":"DAIRY"}`)}, codeDuplicate},
		{"bad filter", request{JSONRPC: "2.0", Method: "items.browse", Params: json.RawMessage(`{"filter":"category:"}`)}, codeInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.dispatch(context.Background(), tc.req)
			if resp.Error == nil || resp.Error.Code != tc.code {
				t.Fatalf("expected code %d, got %+v", tc.code, resp)
			}
		})
	}
}

func TestSocketRoundTrip(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "pantry.sock")
	s, err := Start(socket, newTestService(t), logging.Discard())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"jsonrpc":"2.0","method":"locations.list","id":7}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp struct {
		Result []domain.Location `json:"result"`
		Error  *rpcError         `json:"error"`
		ID     int               `json:"id"`
	}
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != nil || resp.ID != 7 || len(resp.Result) != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
