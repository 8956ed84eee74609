package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/atvirokodosprendimai/pantrypal/internal/application"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

// JSON-RPC error codes. The -320xx range below -32000 is reserved for
// server-defined errors.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
	codeUnavailable    = -32003
	codeNotFound       = -32004
	codeDuplicate      = -32009
)

type Server struct {
	service  *application.PantryService
	logger   *slog.Logger
	listener net.Listener
	path     string
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewServer(service *application.PantryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{service: service, logger: logger}
}

// Start listens on the unix socket at path and serves connections in the
// background until Close.
func Start(path string, service *application.PantryService, logger *slog.Logger) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	s := NewServer(service, logger)
	s.listener = ln
	s.path = path
	go s.serve()
	s.logger.Info("rpc listening", "socket", path)
	return s, nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(context.Background(), req)
		if resp.Error != nil && resp.Error.Code == codeInternal {
			s.logger.Error("rpc call failed", "method", req.Method, "error", resp.Error.Message)
		}
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

type idParams struct {
	ID uint `json:"id"`
}

type nameParams struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type browseParams struct {
	Q          string `json:"q"`
	Filter     string `json:"filter"`
	CategoryID *uint  `json:"category_id"`
	LocationID *uint  `json:"location_id"`
}

type allergenParams struct {
	ItemID      uint   `json:"item_id"`
	AllergenIDs []uint `json:"allergen_ids"`
}

type limitParams struct {
	Days      *int `json:"days"`
	Threshold *int `json:"threshold"`
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInvalidRequest, Message: "invalid request"}, ID: req.ID}
	}
	svc := s.service

	switch req.Method {
	case "system.health":
		out, err := svc.SeedCounts(ctx)
		return result(req.ID, out, err)

	case "categories.list":
		out, err := svc.ListCategories(ctx)
		return result(req.ID, out, err)
	case "categories.add":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.AddCategory(ctx, p.Name)
		return result(req.ID, out, err)
	case "categories.rename":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.RenameCategory(ctx, p.ID, p.Name))
	case "categories.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.DeleteCategory(ctx, p.ID))

	case "brands.list":
		out, err := svc.ListBrands(ctx)
		return result(req.ID, out, err)
	case "brands.add":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.AddBrand(ctx, p.Name)
		return result(req.ID, out, err)
	case "brands.rename":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.RenameBrand(ctx, p.ID, p.Name))
	case "brands.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.DeleteBrand(ctx, p.ID))

	case "locations.list":
		out, err := svc.ListLocations(ctx)
		return result(req.ID, out, err)
	case "locations.add":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.AddLocation(ctx, p.Name)
		return result(req.ID, out, err)
	case "locations.rename":
		var p nameParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.RenameLocation(ctx, p.ID, p.Name))
	case "locations.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.DeleteLocation(ctx, p.ID))

	case "allergens.list":
		out, err := svc.ListAllergens(ctx)
		return result(req.ID, out, err)

	case "items.browse":
		var p browseParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		sel, err := inventory.ParseSelection(p.Filter)
		if err != nil {
			return appError(req.ID, err)
		}
		out, err := svc.Browse(ctx, application.BrowseQuery{
			Search:     p.Q,
			CategoryID: p.CategoryID,
			LocationID: p.LocationID,
			Selection:  sel,
		})
		return result(req.ID, out, err)
	case "items.list":
		out, err := svc.ListItems(ctx)
		return result(req.ID, out, err)
	case "items.get":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.GetItem(ctx, p.ID)
		return result(req.ID, out, err)
	case "items.add":
		var p domain.PantryItem
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.AddItem(ctx, p)
		return result(req.ID, out, err)
	case "items.update":
		var p domain.PantryItem
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.UpdateItem(ctx, p)
		return result(req.ID, out, err)
	case "items.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.DeleteItem(ctx, p.ID))
	case "items.allergens.list":
		var p allergenParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.ListItemAllergens(ctx, p.ItemID)
		return result(req.ID, out, err)
	case "items.allergens.set":
		var p allergenParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := svc.SetItemAllergens(ctx, p.ItemID, p.AllergenIDs); err != nil {
			return appError(req.ID, err)
		}
		out, err := svc.ListItemAllergens(ctx, p.ItemID)
		return result(req.ID, out, err)

	case "views.expiring":
		var p limitParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.ExpiringSoon(ctx, orDefault(p.Days))
		return result(req.ID, out, err)
	case "views.expired":
		out, err := svc.Expired(ctx)
		return result(req.ID, out, err)
	case "views.low":
		var p limitParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.RunningLow(ctx, orDefault(p.Threshold))
		return result(req.ID, out, err)
	case "stats":
		out, err := svc.Stats(ctx)
		return result(req.ID, out, err)

	case "shopping.list":
		out, err := svc.ListShopping(ctx)
		return result(req.ID, out, err)
	case "shopping.add":
		var p domain.ShoppingListEntry
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.AddShopping(ctx, p)
		return result(req.ID, out, err)
	case "shopping.update":
		var p domain.ShoppingListEntry
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.UpdateShopping(ctx, p)
		return result(req.ID, out, err)
	case "shopping.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		return done(req.ID, svc.DeleteShopping(ctx, p.ID))
	case "shopping.restock":
		var p limitParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := svc.RestockRunningLow(ctx, orDefault(p.Threshold))
		return result(req.ID, out, err)
	}

	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeMethodNotFound, Message: "method not found"}, ID: req.ID}
}

// decodeParams accepts absent params as an empty object.
func decodeParams(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	return json.Unmarshal(raw, dst) == nil
}

// orDefault turns an omitted limit into -1, which the service reads as
// "use the configured default".
func orDefault(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

func result(id any, out any, err error) response {
	if err != nil {
		return appError(id, err)
	}
	return response{JSONRPC: "2.0", Result: out, ID: id}
}

func done(id any, err error) response {
	return result(id, map[string]any{"ok": true}, err)
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInvalidParams, Message: "invalid params"}, ID: id}
}

func appError(id any, err error) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: errorCode(err), Message: err.Error()}, ID: id}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return codeInvalidParams
	case errors.Is(err, domain.ErrNotFound):
		return codeNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return codeDuplicate
	case errors.Is(err, domain.ErrInitialization):
		return codeUnavailable
	default:
		return codeInternal
	}
}
